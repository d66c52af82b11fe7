package members

import (
	"context"
	"fmt"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type memberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	ListActive(ctx context.Context) ([]models.Member, error)
	CreateWithTx(tx *gorm.DB, member *models.Member) error
	CreateSignUpWithTx(tx *gorm.DB, signUp *models.SignUp) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
}

// Service manages the membership lifecycle.
type Service interface {
	// Register creates the member and the sign-up record together; neither
	// exists without the other.
	Register(ctx context.Context, input RegisterInput) (*models.Member, error)
	Deactivate(ctx context.Context, memberID uuid.UUID) error
	ListActive(ctx context.Context) ([]models.Member, error)
}

// RegisterInput captures a new membership application.
type RegisterInput struct {
	FirstName  string `validate:"required,max=64"`
	LastName   string `validate:"required,max=64"`
	Level      string `validate:"required"`
	Email      string `validate:"required,email,max=64"`
	Phone      string `validate:"required,max=16"`
	Address    string `validate:"required,max=128"`
	StoreID    uuid.UUID
	SignUpDate time.Time
}

type service struct {
	tx       txRunner
	repo     memberRepository
	validate *validator.Validate
}

// NewService builds the member service.
func NewService(tx txRunner, repo memberRepository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("member repository required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration")
	}
	level, err := enums.ParseMembershipLevel(input.Level)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration")
	}
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sign-up store required")
	}
	if input.SignUpDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sign-up date required")
	}

	member := &models.Member{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Level:     level,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Active:    true,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, member); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving member")
		}
		signUp := &models.SignUp{
			MemberID:   member.ID,
			StoreID:    input.StoreID,
			SignUpDate: input.SignUpDate,
		}
		if err := s.repo.CreateSignUpWithTx(tx, signUp); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving sign-up record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Deactivate cancels a membership. The member row stays so that purchase
// history keeps resolving; only the active flag flips.
func (s *service) Deactivate(ctx context.Context, memberID uuid.UUID) error {
	if memberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}
	updated, err := s.repo.SetActive(ctx, memberID, false)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "updating member")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}
	return nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Member, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing members")
	}
	return active, nil
}
