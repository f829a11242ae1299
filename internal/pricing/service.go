package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canchapp/canchapp-backend/pkg/db"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ruleRepository interface {
	FindByField(ctx context.Context, fieldID uuid.UUID) ([]models.PriceRule, error)
}

type fieldRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Field, error)
}

type complexRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error)
}

// Service exposes price rule management and price resolution.
type Service interface {
	ListRules(ctx context.Context, actorID, fieldID uuid.UUID) ([]PriceRuleDTO, error)
	ReplaceRules(ctx context.Context, actorID, fieldID uuid.UUID, input ReplaceRulesInput) ([]PriceRuleDTO, error)
	Quote(ctx context.Context, fieldID uuid.UUID, day time.Weekday, start types.Clock, durationHours float64) (decimal.Decimal, error)
}

type service struct {
	rules     ruleRepository
	fields    fieldRepository
	complexes complexRepository
	db        *db.Client
}

// NewService builds the pricing service with the provided dependencies.
func NewService(rules ruleRepository, fields fieldRepository, complexes complexRepository, client *db.Client) (Service, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule repository required")
	}
	if fields == nil {
		return nil, fmt.Errorf("field repository required")
	}
	if complexes == nil {
		return nil, fmt.Errorf("complex repository required")
	}
	if client == nil {
		return nil, fmt.Errorf("database client required")
	}
	return &service{rules: rules, fields: fields, complexes: complexes, db: client}, nil
}

func (s *service) ListRules(ctx context.Context, actorID, fieldID uuid.UUID) ([]PriceRuleDTO, error) {
	if _, _, err := s.findOwnedField(ctx, actorID, fieldID); err != nil {
		return nil, err
	}
	rules, err := s.rules.FindByField(ctx, fieldID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list price rules")
	}
	out := make([]PriceRuleDTO, 0, len(rules))
	for i := range rules {
		out = append(out, *FromModel(&rules[i]))
	}
	return out, nil
}

// ReplaceRules updates the base price, drops the stored rule set, and inserts
// the new one, all inside a single transaction.
func (s *service) ReplaceRules(ctx context.Context, actorID, fieldID uuid.UUID, input ReplaceRulesInput) ([]PriceRuleDTO, error) {
	if _, _, err := s.findOwnedField(ctx, actorID, fieldID); err != nil {
		return nil, err
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	rows := make([]models.PriceRule, 0, len(input.Rules))
	for _, rule := range input.Rules {
		if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "day_of_week must be between 0 and 6")
		}
		start, err := types.ParseClock(rule.StartTime)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rule start time")
		}
		end, err := types.ParseClock(rule.EndTime)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rule end time")
		}
		if !start.Before(end) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule start must precede end")
		}
		if rule.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule price cannot be negative")
		}
		isActive := true
		if rule.IsActive != nil {
			isActive = *rule.IsActive
		}
		rows = append(rows, models.PriceRule{
			FieldID:   fieldID,
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			Price:     rule.Price,
			IsActive:  isActive,
		})
	}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRules := NewRepository(tx)
		if err := tx.Model(&models.Field{}).
			Where("id = ?", fieldID).
			UpdateColumn("base_price", input.BasePrice).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update base price")
		}
		if err := txRules.DeleteByFieldWithTx(tx, fieldID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear price rules")
		}
		if err := txRules.CreateAllWithTx(tx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert price rules")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]PriceRuleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// Quote computes the total price for a booking window: the effective hourly
// price for (day, start) multiplied by the duration.
func (s *service) Quote(ctx context.Context, fieldID uuid.UUID, day time.Weekday, start types.Clock, durationHours float64) (decimal.Decimal, error) {
	if durationHours <= 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	field, err := s.fields.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "field not found")
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup field")
	}
	complex, err := s.complexes.FindByID(ctx, field.ComplexID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	rules, err := s.rules.FindByField(ctx, fieldID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load price rules")
	}

	hourly := EffectivePrice(field.BasePrice, rules, complex.OpeningTime, complex.ClosingTime, day, start)
	return hourly.Mul(decimal.NewFromFloat(durationHours)), nil
}

// EffectivePrice resolves the hourly price for (day, start): the first active
// rule whose window contains the start and lies inside the operating hours
// wins, otherwise the base price applies.
func EffectivePrice(basePrice decimal.Decimal, rules []models.PriceRule, openingTime, closingTime string, day time.Weekday, start types.Clock) decimal.Decimal {
	opening, errOpen := types.ParseClock(openingTime)
	closing, errClose := types.ParseClock(closingTime)
	hoursKnown := errOpen == nil && errClose == nil

	for _, rule := range rules {
		if !rule.IsActive || rule.DayOfWeek != int(day) {
			continue
		}
		ruleStart, err := types.ParseClock(rule.StartTime)
		if err != nil {
			continue
		}
		ruleEnd, err := types.ParseClock(rule.EndTime)
		if err != nil {
			continue
		}
		if hoursKnown && (ruleStart.Before(opening) || closing.Before(ruleEnd)) {
			continue
		}
		if !start.Before(ruleStart) && start.Before(ruleEnd) {
			return rule.Price
		}
	}
	return basePrice
}

func (s *service) findOwnedField(ctx context.Context, actorID, fieldID uuid.UUID) (*models.Field, *models.Complex, error) {
	field, err := s.fields.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "field not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup field")
	}
	complex, err := s.complexes.FindByID(ctx, field.ComplexID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	if complex.OwnerID != actorID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "field belongs to another owner")
	}
	return field, complex, nil
}
