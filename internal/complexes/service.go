package complexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canchapp/canchapp-backend/pkg/db"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type complexRepository interface {
	Create(ctx context.Context, complex *models.Complex) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complex, error)
	Update(ctx context.Context, complex *models.Complex) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceAmenities(tx *gorm.DB, complexID uuid.UUID, amenityIDs []uuid.UUID) error
	ReviewAggregates(ctx context.Context, complexIDs []uuid.UUID) (map[uuid.UUID]ReviewAggregate, error)
}

// Service exposes complex operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ComplexDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ComplexDTO, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateComplexInput) (*ComplexDTO, error)
	Update(ctx context.Context, actorID, complexID uuid.UUID, input UpdateComplexInput) (*ComplexDTO, error)
	Delete(ctx context.Context, actorID, complexID uuid.UUID) error
}

type service struct {
	repo complexRepository
	db   *db.Client
}

// NewService builds a complex service with the provided repository.
func NewService(repo complexRepository, client *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("complex repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("database client required")
	}
	return &service{repo: repo, db: client}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ComplexDTO, error) {
	complex, err := s.findComplex(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := FromModel(complex)
	aggregates, err := s.repo.ReviewAggregates(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load reviews")
	}
	if agg, ok := aggregates[id]; ok {
		avg := agg.Average
		dto.AverageRating = &avg
		dto.ReviewCount = agg.Count
	}
	return dto, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ComplexDTO, error) {
	rows, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list complexes")
	}
	out := make([]ComplexDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateComplexInput) (*ComplexDTO, error) {
	if err := validateHours(input.OpeningTime, input.ClosingTime); err != nil {
		return nil, err
	}

	complex := &models.Complex{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Address:     strings.TrimSpace(input.Address),
		City:        strings.TrimSpace(input.City),
		Phone:       input.Phone,
		PhotoURL:    input.PhotoURL,
		OpeningTime: input.OpeningTime,
		ClosingTime: input.ClosingTime,
		IsActive:    true,
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		if err := txRepo.Create(ctx, complex); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create complex")
		}
		if len(input.AmenityIDs) > 0 {
			if err := txRepo.ReplaceAmenities(tx, complex.ID, input.AmenityIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach amenities")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, complex.ID)
}

func (s *service) Update(ctx context.Context, actorID, complexID uuid.UUID, input UpdateComplexInput) (*ComplexDTO, error) {
	complex, err := s.findOwnedComplex(ctx, actorID, complexID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		complex.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		complex.Description = input.Description
	}
	if input.Address != nil {
		complex.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		complex.City = strings.TrimSpace(*input.City)
	}
	if input.Phone != nil {
		complex.Phone = input.Phone
	}
	if input.PhotoURL != nil {
		complex.PhotoURL = input.PhotoURL
	}
	if input.OpeningTime != nil {
		complex.OpeningTime = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		complex.ClosingTime = *input.ClosingTime
	}
	if input.IsActive != nil {
		complex.IsActive = *input.IsActive
	}
	if err := validateHours(complex.OpeningTime, complex.ClosingTime); err != nil {
		return nil, err
	}

	// Save would also rewrite associations; clear them so only columns persist.
	complex.Fields = nil
	complex.Amenities = nil

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		if err := txRepo.Update(ctx, complex); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update complex")
		}
		if input.AmenityIDs != nil {
			if err := txRepo.ReplaceAmenities(tx, complex.ID, *input.AmenityIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace amenities")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, complexID)
}

func (s *service) Delete(ctx context.Context, actorID, complexID uuid.UUID) error {
	if _, err := s.findOwnedComplex(ctx, actorID, complexID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, complexID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete complex")
	}
	return nil
}

func (s *service) findComplex(ctx context.Context, id uuid.UUID) (*models.Complex, error) {
	complex, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complex not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	return complex, nil
}

func (s *service) findOwnedComplex(ctx context.Context, actorID, complexID uuid.UUID) (*models.Complex, error) {
	complex, err := s.findComplex(ctx, complexID)
	if err != nil {
		return nil, err
	}
	if complex.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "complex belongs to another owner")
	}
	return complex, nil
}

func validateHours(opening, closing string) error {
	open, err := types.ParseClock(opening)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid opening time")
	}
	close, err := types.ParseClock(closing)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid closing time")
	}
	if !open.Before(close) {
		return pkgerrors.New(pkgerrors.CodeValidation, "opening time must precede closing time")
	}
	return nil
}
