package repo

import (
	"context"
	"errors"

	"storefront/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrZoneNotFound = errors.New("delivery zone not found")

type ZoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

func (r *ZoneRepository) Create(ctx context.Context, zone *models.DeliveryZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *ZoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&zone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

// List returns zones ordered by name, optionally only active ones.
func (r *ZoneRepository) List(ctx context.Context, activeOnly bool) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&zones).Error
	return zones, err
}
