package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
)

// PriceRuleDTO is the transport shape for a weekly price override.
type PriceRuleDTO struct {
	ID        uuid.UUID       `json:"id"`
	FieldID   uuid.UUID       `json:"field_id"`
	DayOfWeek int             `json:"day_of_week"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RuleInput describes one rule in a replace request.
type RuleInput struct {
	DayOfWeek int             `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string          `json:"start_time" validate:"required"`
	EndTime   string          `json:"end_time" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	IsActive  *bool           `json:"is_active,omitempty"`
}

// ReplaceRulesInput mirrors the pricing save flow: a new base price plus the
// full rule set that replaces whatever was stored before.
type ReplaceRulesInput struct {
	BasePrice decimal.Decimal `json:"base_price" validate:"required"`
	Rules     []RuleInput     `json:"rules"`
}

// FromModel maps the persisted rule into a DTO.
func FromModel(m *models.PriceRule) *PriceRuleDTO {
	if m == nil {
		return nil
	}
	return &PriceRuleDTO{
		ID:        m.ID,
		FieldID:   m.FieldID,
		DayOfWeek: m.DayOfWeek,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Price:     m.Price,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
