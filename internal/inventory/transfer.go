package inventory

import (
	"context"

	"github.com/clubware/backoffice/pkg/db/models"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransferResult reports how a shipment split landed at the destination.
type TransferResult struct {
	SourceID      uuid.UUID
	DestinationID uuid.UUID
	Quantity      int
	// CreatedBatch is true when the destination had no batch with the same
	// product name and a new one was created.
	CreatedBatch bool
}

// Transfer moves qty units of the source batch to the destination store as a
// single atomic operation. Shipments move as whole-quantity splits because
// production/expiration metadata is tracked per shipment, not per unit. When
// the destination already carries a batch with the same product name, the
// units merge into it and take on its metadata; otherwise a new batch is
// created copying the source's attributes.
func (s *service) Transfer(ctx context.Context, sourceID, destStoreID uuid.UUID, qty int) (*TransferResult, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity")
	}
	if sourceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source merchandise id required")
	}
	if destStoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination store id required")
	}

	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "source merchandise not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading source batch")
	}
	if source.StoreID == destStoreID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source and destination stores must differ")
	}
	if qty > source.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "insufficient inventory")
	}

	var result *TransferResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		// Re-checked under the transaction: the earlier read may be stale.
		decremented, err := s.repo.DecrementWithTx(tx, source.ID, qty)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decrementing source batch")
		}
		if !decremented {
			return pkgerrors.New(pkgerrors.CodePrecondition, "insufficient inventory")
		}

		dest, err := s.repo.FindByStoreAndNameWithTx(tx, destStoreID, source.ProductName)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "searching destination inventory")
		}

		if dest != nil {
			if err := s.repo.IncrementWithTx(tx, dest.ID, qty); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "incrementing destination batch")
			}
			result = &TransferResult{
				SourceID:      source.ID,
				DestinationID: dest.ID,
				Quantity:      qty,
			}
			return nil
		}

		created := &models.Merchandise{
			ID:             uuid.New(),
			ProductName:    source.ProductName,
			Quantity:       qty,
			BuyPrice:       source.BuyPrice,
			MarketPrice:    source.MarketPrice,
			ProductionDate: source.ProductionDate,
			ExpirationDate: source.ExpirationDate,
			StoreID:        destStoreID,
			SupplierID:     source.SupplierID,
		}
		if err := s.repo.CreateWithTx(tx, created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "creating destination batch")
		}
		result = &TransferResult{
			SourceID:      source.ID,
			DestinationID: created.ID,
			Quantity:      qty,
			CreatedBatch:  true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
