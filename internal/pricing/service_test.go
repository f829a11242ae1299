package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/canchapp/canchapp-backend/pkg/db"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS complexes (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  phone TEXT,
  photo_url TEXT,
  opening_time TEXT NOT NULL DEFAULT '08:00',
  closing_time TEXT NOT NULL DEFAULT '23:00',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS fields (
  id TEXT PRIMARY KEY,
  complex_id TEXT NOT NULL,
  name TEXT NOT NULL,
  format INTEGER NOT NULL,
  surface TEXT NOT NULL,
  covered INTEGER NOT NULL DEFAULT 0,
  lighting INTEGER NOT NULL DEFAULT 0,
  base_price TEXT NOT NULL,
  photos TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS price_rules (
  id TEXT PRIMARY KEY,
  field_id TEXT NOT NULL,
  day_of_week INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  price TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		conn.Exec("DELETE FROM price_rules")
		conn.Exec("DELETE FROM fields")
		conn.Exec("DELETE FROM complexes")
	})

	return conn
}

func seedComplexAndField(t *testing.T, conn *gorm.DB, ownerID uuid.UUID) (*models.Complex, *models.Field) {
	t.Helper()

	complex := &models.Complex{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        "Club Norte",
		Address:     "Av. Siempreviva 100",
		City:        "Rosario",
		OpeningTime: "08:00",
		ClosingTime: "23:00",
		IsActive:    true,
	}
	require.NoError(t, conn.Create(complex).Error)

	field := &models.Field{
		ID:        uuid.New(),
		ComplexID: complex.ID,
		Name:      "Cancha 1",
		Format:    enums.FieldFormat5,
		Surface:   enums.SurfaceSynthetic,
		BasePrice: decimal.NewFromInt(10000),
		IsActive:  true,
	}
	require.NoError(t, conn.Create(field).Error)
	return complex, field
}

func mustClock(t *testing.T, value string) types.Clock {
	t.Helper()
	c, err := types.ParseClock(value)
	require.NoError(t, err)
	return c
}

func buildPricingService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		fieldFinder{conn},
		complexFinder{conn},
		db.NewWithConn(conn),
	)
	require.NoError(t, err)
	return svc
}

type fieldFinder struct{ conn *gorm.DB }

func (f fieldFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	var field models.Field
	if err := f.conn.WithContext(ctx).First(&field, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

type complexFinder struct{ conn *gorm.DB }

func (f complexFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error) {
	var complex models.Complex
	if err := f.conn.WithContext(ctx).First(&complex, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complex, nil
}

func TestEffectivePricePrefersMatchingRule(t *testing.T) {
	base := decimal.NewFromInt(10000)
	rules := []models.PriceRule{
		{DayOfWeek: int(time.Friday), StartTime: "18:00", EndTime: "23:00", Price: decimal.NewFromInt(15000), IsActive: true},
	}

	night := EffectivePrice(base, rules, "08:00", "23:00", time.Friday, mustClock(t, "20:00"))
	require.True(t, night.Equal(decimal.NewFromInt(15000)), "expected rule price, got %s", night)

	morning := EffectivePrice(base, rules, "08:00", "23:00", time.Friday, mustClock(t, "10:00"))
	require.True(t, morning.Equal(base), "expected base price, got %s", morning)

	otherDay := EffectivePrice(base, rules, "08:00", "23:00", time.Monday, mustClock(t, "20:00"))
	require.True(t, otherDay.Equal(base), "expected base price on other day, got %s", otherDay)
}

func TestEffectivePriceIgnoresInactiveAndOutOfHoursRules(t *testing.T) {
	base := decimal.NewFromInt(8000)
	rules := []models.PriceRule{
		{DayOfWeek: int(time.Monday), StartTime: "18:00", EndTime: "22:00", Price: decimal.NewFromInt(12000), IsActive: false},
		{DayOfWeek: int(time.Monday), StartTime: "06:00", EndTime: "10:00", Price: decimal.NewFromInt(5000), IsActive: true},
	}

	// inactive rule skipped, second rule starts before opening so it is skipped too
	got := EffectivePrice(base, rules, "08:00", "23:00", time.Monday, mustClock(t, "19:00"))
	require.True(t, got.Equal(base))

	got = EffectivePrice(base, rules, "08:00", "23:00", time.Monday, mustClock(t, "09:00"))
	require.True(t, got.Equal(base))
}

func TestReplaceRulesSwapsRuleSetTransactionally(t *testing.T) {
	conn := setupPricingTestDB(t)
	ownerID := uuid.New()
	_, field := seedComplexAndField(t, conn, ownerID)
	svc := buildPricingService(t, conn)
	ctx := context.Background()

	first, err := svc.ReplaceRules(ctx, ownerID, field.ID, ReplaceRulesInput{
		BasePrice: decimal.NewFromInt(11000),
		Rules: []RuleInput{
			{DayOfWeek: int(time.Saturday), StartTime: "18:00", EndTime: "22:00", Price: decimal.NewFromInt(16000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ReplaceRules(ctx, ownerID, field.ID, ReplaceRulesInput{
		BasePrice: decimal.NewFromInt(12000),
		Rules: []RuleInput{
			{DayOfWeek: int(time.Sunday), StartTime: "10:00", EndTime: "14:00", Price: decimal.NewFromInt(14000)},
			{DayOfWeek: int(time.Sunday), StartTime: "18:00", EndTime: "22:00", Price: decimal.NewFromInt(17000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, second, 2)

	stored, err := NewRepository(conn).FindByField(ctx, field.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2, "old rules must be gone")

	var updated models.Field
	require.NoError(t, conn.First(&updated, "id = ?", field.ID).Error)
	require.True(t, updated.BasePrice.Equal(decimal.NewFromInt(12000)))
}

func TestReplaceRulesRejectsForeignOwner(t *testing.T) {
	conn := setupPricingTestDB(t)
	_, field := seedComplexAndField(t, conn, uuid.New())
	svc := buildPricingService(t, conn)

	_, err := svc.ReplaceRules(context.Background(), uuid.New(), field.ID, ReplaceRulesInput{
		BasePrice: decimal.NewFromInt(9000),
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestQuoteMultipliesEffectivePriceByDuration(t *testing.T) {
	conn := setupPricingTestDB(t)
	ownerID := uuid.New()
	_, field := seedComplexAndField(t, conn, ownerID)
	svc := buildPricingService(t, conn)
	ctx := context.Background()

	_, err := svc.ReplaceRules(ctx, ownerID, field.ID, ReplaceRulesInput{
		BasePrice: decimal.NewFromInt(10000),
		Rules: []RuleInput{
			{DayOfWeek: int(time.Friday), StartTime: "18:00", EndTime: "23:00", Price: decimal.NewFromInt(15000)},
		},
	})
	require.NoError(t, err)

	total, err := svc.Quote(ctx, field.ID, time.Friday, mustClock(t, "20:00"), 1.5)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromFloat(22500)), "got %s", total)

	total, err = svc.Quote(ctx, field.ID, time.Tuesday, mustClock(t, "10:00"), 2)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromInt(20000)), "got %s", total)
}
