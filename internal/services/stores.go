package services

import (
	"context"
	"errors"
	"time"

	"storefront/pkg/models"

	"github.com/google/uuid"
)

// ErrInvalidInput marks caller mistakes that map to 400 responses.
var ErrInvalidInput = errors.New("invalid input")

// ShopStore is the persistence the services need for shops
type ShopStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListWithActiveClosures(ctx context.Context) ([]models.Shop, error)
	UpdateBusinessHours(ctx context.Context, id uuid.UUID, hours models.BusinessHoursList) error
	UpdateTemporaryClosure(ctx context.Context, id uuid.UUID, closure models.ClosureState) error
	ClearLapsedClosure(ctx context.Context, id uuid.UUID, lapsed models.ClosureState) (bool, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings models.ShopSettings) error
	ListHolidays(ctx context.Context, shopID uuid.UUID) ([]models.SpecialHoliday, error)
	AddHoliday(ctx context.Context, holiday *models.SpecialHoliday) error
	DeleteHoliday(ctx context.Context, shopID, holidayID uuid.UUID) error
}

// ZoneStore is the persistence the services need for delivery zones
type ZoneStore interface {
	Create(ctx context.Context, zone *models.DeliveryZone) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryZone, error)
	List(ctx context.Context, activeOnly bool) ([]models.DeliveryZone, error)
}

// StatusStore caches evaluated statuses and fans out changes
type StatusStore interface {
	Get(ctx context.Context, shopID uuid.UUID, now time.Time) (*models.ShopStatus, bool, error)
	Set(ctx context.Context, status *models.ShopStatus) error
	Invalidate(ctx context.Context, shopID uuid.UUID) error
	Publish(ctx context.Context, status *models.ShopStatus) error
}

// StatusNotifier pushes a status change to connected clients
type StatusNotifier interface {
	BroadcastShopStatus(status *models.ShopStatus)
}
