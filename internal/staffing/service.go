package staffing

import (
	"context"
	"fmt"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type staffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	ByStoreAndRole(ctx context.Context, storeID uuid.UUID, role enums.StaffRole) ([]models.Staff, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service manages store staffing.
type Service interface {
	Hire(ctx context.Context, input HireInput) (*models.Staff, error)
	Fire(ctx context.Context, staffID uuid.UUID) error
	// CashiersAt lists the store's billing staff; checkout needs at least one.
	CashiersAt(ctx context.Context, storeID uuid.UUID) ([]models.Staff, error)
}

// HireInput captures a new hire. Role accepts legacy payroll job titles such
// as "cashier" or "warehouse checker".
type HireInput struct {
	StoreID uuid.UUID
	Name    string `validate:"required,max=64"`
	Age     int    `validate:"required,gte=16,lte=100"`
	Address string `validate:"required,max=128"`
	Phone   string `validate:"required,max=16"`
	Email   string `validate:"required,email,max=64"`
	Role    string `validate:"required"`
}

type service struct {
	repo     staffRepository
	validate *validator.Validate
}

// NewService builds the staffing service.
func NewService(repo staffRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	return &service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *service) Hire(ctx context.Context, input HireInput) (*models.Staff, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid hire")
	}
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	role, err := enums.ParseStaffRole(input.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid hire")
	}

	staff := &models.Staff{
		StoreID: input.StoreID,
		Name:    input.Name,
		Age:     input.Age,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		Role:    role,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving staff")
	}
	return staff, nil
}

func (s *service) Fire(ctx context.Context, staffID uuid.UUID) error {
	if staffID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "staff id required")
	}
	deleted, err := s.repo.Delete(ctx, staffID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "deleting staff")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "staff not found")
	}
	return nil
}

func (s *service) CashiersAt(ctx context.Context, storeID uuid.UUID) ([]models.Staff, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	cashiers, err := s.repo.ByStoreAndRole(ctx, storeID, enums.StaffRoleBilling)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing cashiers")
	}
	return cashiers, nil
}
