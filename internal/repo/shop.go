package repo

import (
	"context"
	"encoding/json"
	"errors"

	"storefront/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrHolidayNotFound = errors.New("holiday not found")
)

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// GetByID loads a shop together with its holidays.
func (r *ShopRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).
		Preload("Holidays", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC")
		}).
		Where("id = ?", id).
		First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// ListWithActiveClosures returns shops whose temporary closure flag is set.
func (r *ShopRepository) ListWithActiveClosures(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Where("temporary_closure->>'isClosed' = ?", "true").
		Find(&shops).Error
	return shops, err
}

func (r *ShopRepository) UpdateBusinessHours(ctx context.Context, id uuid.UUID, hours models.BusinessHoursList) error {
	return r.updateColumn(ctx, id, "business_hours", hours)
}

func (r *ShopRepository) UpdateTemporaryClosure(ctx context.Context, id uuid.UUID, closure models.ClosureState) error {
	return r.updateColumn(ctx, id, "temporary_closure", closure)
}

// ClearLapsedClosure resets the temporary closure only while it still equals lapsed. It
// reports false when the shop is gone or its closure was rewritten in the meantime.
func (r *ShopRepository) ClearLapsedClosure(ctx context.Context, id uuid.UUID, lapsed models.ClosureState) (bool, error) {
	expected, err := json.Marshal(lapsed)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ? AND temporary_closure = ?::jsonb", id, string(expected)).
		Update("temporary_closure", models.ClosureState{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ShopRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings models.ShopSettings) error {
	return r.updateColumn(ctx, id, "settings", settings)
}

func (r *ShopRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShopNotFound
	}
	return nil
}

func (r *ShopRepository) ListHolidays(ctx context.Context, shopID uuid.UUID) ([]models.SpecialHoliday, error) {
	var holidays []models.SpecialHoliday
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("start_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *ShopRepository) AddHoliday(ctx context.Context, holiday *models.SpecialHoliday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *ShopRepository) DeleteHoliday(ctx context.Context, shopID, holidayID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", holidayID, shopID).
		Delete(&models.SpecialHoliday{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHolidayNotFound
	}
	return nil
}
