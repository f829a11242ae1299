package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/canchapp/canchapp-backend/pkg/db"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByComplex(ctx context.Context, complexID uuid.UUID) ([]ListRow, error)
	ExistsByComplexAndUser(ctx context.Context, complexID, userID uuid.UUID) (bool, error)
}

type complexRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error)
}

// Service exposes review operations.
type Service interface {
	Create(ctx context.Context, userID, complexID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListByComplex(ctx context.Context, complexID uuid.UUID) ([]ReviewDTO, error)
}

type service struct {
	repo      reviewRepository
	complexes complexRepository
}

// NewService builds a review service with the provided repositories.
func NewService(repo reviewRepository, complexes complexRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if complexes == nil {
		return nil, fmt.Errorf("complex repository required")
	}
	return &service{repo: repo, complexes: complexes}, nil
}

func (s *service) Create(ctx context.Context, userID, complexID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if _, err := s.complexes.FindByID(ctx, complexID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complex not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}

	exists, err := s.repo.ExistsByComplexAndUser(ctx, complexID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing review")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "you already reviewed this complex")
	}

	review := &models.Review{
		ComplexID: complexID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "ux_reviews_complex_user") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you already reviewed this complex")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return FromModel(review), nil
}

func (s *service) ListByComplex(ctx context.Context, complexID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.FindByComplex(ctx, complexID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		dto := FromModel(&row.Review)
		dto.UserName = row.UserName
		out = append(out, *dto)
	}
	return out, nil
}
