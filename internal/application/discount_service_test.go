package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edsis/inventory-service/pkg/errors"

	"github.com/edsis/inventory-service/internal/domain"
)

func newDiscountTestService(discounts *fakeDiscountRepo, products *fakeProductRepo) *DiscountService {
	return NewDiscountService(discounts, products, testLogger())
}

func TestDiscountService_ManageDiscountAdd(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	dto, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeAdd,
		Discount: DiscountInput{Name: "Trade 10%", Value: 10},
	})

	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "Trade 10%", dto.Name)
	assert.Equal(t, 10.0, dto.Value)
	assert.True(t, dto.IsActive)

	saved := discounts.discounts[dto.ID]
	require.NotNil(t, saved)
	assert.Equal(t, "Trade 10%", saved.Name)
}

func TestDiscountService_ManageDiscountNameConflict(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	discounts.discounts["disc-1"] = &domain.Discount{ID: "disc-1", Name: "Trade 10%", Value: 10}

	_, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeAdd,
		Discount: DiscountInput{Name: "Trade 10%", Value: 12},
	})

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}

func TestDiscountService_ManageDiscountEditKeepsOwnName(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	discounts.discounts["disc-1"] = &domain.Discount{ID: "disc-1", Name: "Trade 10%", Value: 10}

	// Editing a rule without renaming it must not trip the uniqueness check
	dto, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeEdit,
		Discount: DiscountInput{ID: "disc-1", Name: "Trade 10%", Value: 12},
	})

	require.NoError(t, err)
	assert.Equal(t, 12.0, dto.Value)
}

func TestDiscountService_ManageDiscountDeactivation(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	created := time.Now().AddDate(0, -3, 0)
	discounts.discounts["disc-1"] = &domain.Discount{ID: "disc-1", Name: "Trade 10%", Value: 10, IsActive: true, CreatedAt: created}

	inactive := false
	dto, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeEdit,
		Discount: DiscountInput{ID: "disc-1", Name: "Trade 10%", Value: 10, IsActive: &inactive},
	})

	require.NoError(t, err)
	assert.False(t, dto.IsActive)

	// Edits keep the original creation time
	assert.Equal(t, created, dto.CreatedAt)
}

func TestDiscountService_ManageDiscountDefaultsToActive(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	dto, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeAdd,
		Discount: DiscountInput{Name: "Trade 10%", Value: 10},
	})

	require.NoError(t, err)
	assert.True(t, dto.IsActive)
	assert.False(t, dto.CreatedAt.IsZero())
}

func TestDiscountService_ManageDiscountEditCascades(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	discounts.discounts["disc-1"] = &domain.Discount{ID: "disc-1", Name: "Trade 10%", Value: 10}

	affected := &domain.Product{
		ID:             "prod-1",
		RetailPriceIDR: 100000,
		Discounts: []domain.DiscountLine{
			{ID: "disc-1", Name: "Trade 10%", Value: 10},
			{ID: "disc-2", Name: "Clearance", Value: 5},
		},
		DiscountIDs:  []string{"disc-1", "disc-2"},
		NettPriceIDR: 85500,
	}
	products.products["prod-1"] = affected

	untouched := &domain.Product{
		ID:             "prod-2",
		RetailPriceIDR: 100000,
		Discounts:      []domain.DiscountLine{{ID: "disc-2", Name: "Clearance", Value: 5}},
		DiscountIDs:    []string{"disc-2"},
		NettPriceIDR:   95000,
	}
	products.products["prod-2"] = untouched

	_, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeEdit,
		Discount: DiscountInput{ID: "disc-1", Name: "Trade 20%", Value: 20},
	})
	require.NoError(t, err)

	require.Len(t, products.pricingBatch, 1)
	assert.Equal(t, "prod-1", products.pricingBatch[0].ProductID)

	assert.Equal(t, "Trade 20%", affected.Discounts[0].Name)
	assert.Equal(t, 20.0, affected.Discounts[0].Value)
	assert.Equal(t, 5.0, affected.Discounts[1].Value)

	// 100000 * 0.80 * 0.95
	assert.Equal(t, int64(76000), affected.NettPriceIDR)

	assert.Equal(t, int64(95000), untouched.NettPriceIDR)
}

func TestDiscountService_ManageDiscountDelete(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	discounts.discounts["disc-1"] = &domain.Discount{ID: "disc-1", Name: "Trade 10%", Value: 10}

	dto, err := svc.ManageDiscount(context.Background(), ManageDiscountCommand{
		Mode:     ModeDelete,
		Discount: DiscountInput{ID: "disc-1"},
	})

	require.NoError(t, err)
	assert.Nil(t, dto)
	assert.Empty(t, discounts.discounts)
}

func TestDiscountService_ListDiscounts(t *testing.T) {
	discounts := newFakeDiscountRepo()
	products := newFakeProductRepo()
	svc := newDiscountTestService(discounts, products)

	discounts.discounts["disc-1"] = &domain.Discount{ID: "disc-1", Name: "Trade 10%", Value: 10, CreatedAt: time.Now()}
	discounts.discounts["disc-2"] = &domain.Discount{ID: "disc-2", Name: "Clearance", Value: 5, CreatedAt: time.Now()}

	dtos, err := svc.ListDiscounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, dtos, 2)
}

func TestSettingsService_GetRatesDefaults(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, testLogger())

	dto, err := svc.GetRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(domain.DefaultEURRate), dto.EURRate)
	assert.Equal(t, int64(domain.DefaultUSDRate), dto.USDRate)
}

func TestSettingsService_UpdateRates(t *testing.T) {
	settings := &fakeSettingsRepo{}
	svc := NewSettingsService(settings, testLogger())

	dto, err := svc.UpdateRates(context.Background(), UpdateRatesCommand{EURRate: 18000, USDRate: 16000})
	require.NoError(t, err)
	assert.Equal(t, int64(18000), dto.EURRate)
	assert.False(t, dto.LastUpdated.IsZero())

	stored, err := settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(18000), stored.EURRate)
	assert.Equal(t, int64(16000), stored.USDRate)
}
