package fields

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fieldRepository interface {
	Create(ctx context.Context, field *models.Field) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Field, error)
	FindByComplex(ctx context.Context, complexID uuid.UUID) ([]models.Field, error)
	Update(ctx context.Context, field *models.Field) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type complexOwnership interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error)
}

// Service exposes field operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*FieldDTO, error)
	ListByComplex(ctx context.Context, complexID uuid.UUID) ([]FieldDTO, error)
	Create(ctx context.Context, actorID, complexID uuid.UUID, input CreateFieldInput) (*FieldDTO, error)
	Update(ctx context.Context, actorID, fieldID uuid.UUID, input UpdateFieldInput) (*FieldDTO, error)
	Delete(ctx context.Context, actorID, fieldID uuid.UUID) error
}

type service struct {
	repo      fieldRepository
	complexes complexOwnership
}

// NewService builds a field service with the provided repositories.
func NewService(repo fieldRepository, complexes complexOwnership) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("field repository required")
	}
	if complexes == nil {
		return nil, fmt.Errorf("complex repository required")
	}
	return &service{repo: repo, complexes: complexes}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*FieldDTO, error) {
	field, err := s.findField(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(field), nil
}

func (s *service) ListByComplex(ctx context.Context, complexID uuid.UUID) ([]FieldDTO, error) {
	rows, err := s.repo.FindByComplex(ctx, complexID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fields")
	}
	out := make([]FieldDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actorID, complexID uuid.UUID, input CreateFieldInput) (*FieldDTO, error) {
	if err := s.requireOwnership(ctx, actorID, complexID); err != nil {
		return nil, err
	}
	if !input.Format.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid field format")
	}
	if !input.Surface.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid surface type")
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	field := &models.Field{
		ComplexID: complexID,
		Name:      strings.TrimSpace(input.Name),
		Format:    input.Format,
		Surface:   input.Surface,
		Covered:   input.Covered,
		Lighting:  input.Lighting,
		BasePrice: input.BasePrice,
		Photos:    input.Photos,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, field); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create field")
	}
	return FromModel(field), nil
}

func (s *service) Update(ctx context.Context, actorID, fieldID uuid.UUID, input UpdateFieldInput) (*FieldDTO, error) {
	field, err := s.findField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, actorID, field.ComplexID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		field.Name = strings.TrimSpace(*input.Name)
	}
	if input.Format != nil {
		if !input.Format.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid field format")
		}
		field.Format = *input.Format
	}
	if input.Surface != nil {
		if !input.Surface.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid surface type")
		}
		field.Surface = *input.Surface
	}
	if input.Covered != nil {
		field.Covered = *input.Covered
	}
	if input.Lighting != nil {
		field.Lighting = *input.Lighting
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
		}
		field.BasePrice = *input.BasePrice
	}
	if input.Photos != nil {
		field.Photos = *input.Photos
	}
	if input.IsActive != nil {
		field.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, field); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update field")
	}
	return FromModel(field), nil
}

func (s *service) Delete(ctx context.Context, actorID, fieldID uuid.UUID) error {
	field, err := s.findField(ctx, fieldID)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(ctx, actorID, field.ComplexID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, fieldID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete field")
	}
	return nil
}

func (s *service) findField(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	field, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "field not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup field")
	}
	return field, nil
}

func (s *service) requireOwnership(ctx context.Context, actorID, complexID uuid.UUID) error {
	complex, err := s.complexes.FindByID(ctx, complexID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "complex not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	if complex.OwnerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "complex belongs to another owner")
	}
	return nil
}

