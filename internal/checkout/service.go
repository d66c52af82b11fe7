package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubware/backoffice/internal/discounts"
	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/clubware/backoffice/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type batchReader interface {
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Merchandise, error)
	DecrementWithTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)
}

type discountResolver interface {
	ResolveWithTx(tx *gorm.DB, merchandiseID uuid.UUID, date time.Time) (*models.Discount, error)
}

type transactionWriter interface {
	CreateWithTx(tx *gorm.DB, transaction *models.Transaction) error
}

type cashierFinder interface {
	ByStoreAndRole(ctx context.Context, storeID uuid.UUID, role enums.StaffRole) ([]models.Staff, error)
}

type memberLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// Service opens carts and turns them into persisted transactions.
type Service interface {
	// Begin opens an empty cart for an active member, pinning the first
	// billing-role staff found at the store as the cashier. A store with no
	// billing staff cannot sell.
	Begin(ctx context.Context, storeID, memberID uuid.UUID, purchaseDate time.Time) (*Cart, error)
	// Complete prices every unit in the cart, takes the stock, and persists
	// the transaction atomically. Any shortfall rolls the whole purchase back.
	Complete(ctx context.Context, cart *Cart) (*models.Transaction, error)
}

type service struct {
	log          *logger.Logger
	tx           txRunner
	batches      batchReader
	discounts    discountResolver
	transactions transactionWriter
	staff        cashierFinder
	members      memberLoader
}

// NewService builds the checkout service.
func NewService(log *logger.Logger, tx txRunner, batches batchReader, resolver discountResolver, transactions transactionWriter, staff cashierFinder, members memberLoader) (Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if batches == nil {
		return nil, fmt.Errorf("batch reader required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("discount resolver required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction writer required")
	}
	if staff == nil {
		return nil, fmt.Errorf("cashier finder required")
	}
	if members == nil {
		return nil, fmt.Errorf("member loader required")
	}
	return &service{
		log:          log,
		tx:           tx,
		batches:      batches,
		discounts:    resolver,
		transactions: transactions,
		staff:        staff,
		members:      members,
	}, nil
}

func (s *service) Begin(ctx context.Context, storeID, memberID uuid.UUID, purchaseDate time.Time) (*Cart, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if memberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}
	if purchaseDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase date required")
	}

	cashiers, err := s.staff.ByStoreAndRole(ctx, storeID, enums.StaffRoleBilling)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "looking up cashiers")
	}
	if len(cashiers) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "no cashier available")
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading member")
	}
	if !member.Active {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "membership is not active")
	}

	return &Cart{
		StoreID:      storeID,
		MemberID:     memberID,
		CashierID:    cashiers[0].ID,
		PurchaseDate: purchaseDate,
	}, nil
}

func (s *service) Complete(ctx context.Context, cart *Cart) (*models.Transaction, error) {
	if cart == nil || cart.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if cart.PurchaseDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase date required")
	}

	units := cart.Units()
	counts := make(map[uuid.UUID]int, len(units))
	for _, id := range units {
		counts[id]++
	}

	var transaction *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		// One price per batch, fixed at completion time.
		prices := make(map[uuid.UUID]float64, len(counts))
		for merchandiseID, count := range counts {
			merch, err := s.batches.FindByIDWithTx(tx, merchandiseID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "merchandise not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading merchandise")
			}
			if merch.StoreID != cart.StoreID {
				return pkgerrors.New(pkgerrors.CodeValidation, "merchandise belongs to another store")
			}

			discount, err := s.discounts.ResolveWithTx(tx, merchandiseID, cart.PurchaseDate)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "resolving discount")
			}
			prices[merchandiseID] = discounts.UnitPrice(merch.MarketPrice, discount)

			taken, err := s.batches.DecrementWithTx(tx, merchandiseID, count)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "taking stock")
			}
			if !taken {
				return pkgerrors.New(pkgerrors.CodePrecondition, "insufficient inventory").
					WithDetails(map[string]any{"merchandise_id": merchandiseID.String()})
			}
		}

		items := make([]models.TransactionItem, 0, len(units))
		var total float64
		for i, merchandiseID := range units {
			price := prices[merchandiseID]
			total += price
			items = append(items, models.TransactionItem{
				MerchandiseID: merchandiseID,
				LineNo:        i + 1,
				UnitPrice:     price,
			})
		}

		transaction = &models.Transaction{
			StoreID:      cart.StoreID,
			MemberID:     cart.MemberID,
			CashierID:    cart.CashierID,
			PurchaseDate: cart.PurchaseDate,
			TotalPrice:   total,
			Items:        items,
		}
		if err := s.transactions.CreateWithTx(tx, transaction); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.log.WithStoreID(ctx, cart.StoreID.String())
	ctx = s.log.WithMemberID(ctx, cart.MemberID.String())
	ctx = s.log.WithFields(ctx, map[string]any{
		"transaction_id": transaction.ID.String(),
		"units":          len(units),
		"total_price":    transaction.TotalPrice,
	})
	s.log.Info(ctx, "purchase completed")
	return transaction, nil
}
