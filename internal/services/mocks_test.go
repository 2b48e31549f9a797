package services

import (
	"context"
	"sync"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockShopStore struct {
	mock.Mock
}

func (m *MockShopStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*models.Shop)
	return shop, args.Error(1)
}

func (m *MockShopStore) ListWithActiveClosures(ctx context.Context) ([]models.Shop, error) {
	args := m.Called(ctx)
	if fn, ok := args.Get(0).(func(context.Context) []models.Shop); ok {
		return fn(ctx), args.Error(1)
	}
	shops, _ := args.Get(0).([]models.Shop)
	return shops, args.Error(1)
}

func (m *MockShopStore) UpdateBusinessHours(ctx context.Context, id uuid.UUID, hours models.BusinessHoursList) error {
	args := m.Called(ctx, id, hours)
	return args.Error(0)
}

func (m *MockShopStore) UpdateTemporaryClosure(ctx context.Context, id uuid.UUID, closure models.ClosureState) error {
	args := m.Called(ctx, id, closure)
	return args.Error(0)
}

func (m *MockShopStore) ClearLapsedClosure(ctx context.Context, id uuid.UUID, lapsed models.ClosureState) (bool, error) {
	args := m.Called(ctx, id, lapsed)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopStore) UpdateSettings(ctx context.Context, id uuid.UUID, settings models.ShopSettings) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

func (m *MockShopStore) ListHolidays(ctx context.Context, shopID uuid.UUID) ([]models.SpecialHoliday, error) {
	args := m.Called(ctx, shopID)
	holidays, _ := args.Get(0).([]models.SpecialHoliday)
	return holidays, args.Error(1)
}

func (m *MockShopStore) AddHoliday(ctx context.Context, holiday *models.SpecialHoliday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

func (m *MockShopStore) DeleteHoliday(ctx context.Context, shopID, holidayID uuid.UUID) error {
	args := m.Called(ctx, shopID, holidayID)
	return args.Error(0)
}

type MockZoneStore struct {
	mock.Mock
}

func (m *MockZoneStore) Create(ctx context.Context, zone *models.DeliveryZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneStore) GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryZone, error) {
	args := m.Called(ctx, id)
	zone, _ := args.Get(0).(*models.DeliveryZone)
	return zone, args.Error(1)
}

func (m *MockZoneStore) List(ctx context.Context, activeOnly bool) ([]models.DeliveryZone, error) {
	args := m.Called(ctx, activeOnly)
	zones, _ := args.Get(0).([]models.DeliveryZone)
	return zones, args.Error(1)
}

type MockStatusStore struct {
	mock.Mock
}

func (m *MockStatusStore) Get(ctx context.Context, shopID uuid.UUID, now time.Time) (*models.ShopStatus, bool, error) {
	args := m.Called(ctx, shopID, now)
	status, _ := args.Get(0).(*models.ShopStatus)
	return status, args.Bool(1), args.Error(2)
}

func (m *MockStatusStore) Set(ctx context.Context, status *models.ShopStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusStore) Invalidate(ctx context.Context, shopID uuid.UUID) error {
	args := m.Called(ctx, shopID)
	return args.Error(0)
}

func (m *MockStatusStore) Publish(ctx context.Context, status *models.ShopStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

type recordingNotifier struct {
	mu       sync.Mutex
	statuses []models.ShopStatus
}

func (n *recordingNotifier) BroadcastShopStatus(status *models.ShopStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, *status)
}

func (n *recordingNotifier) Received() []models.ShopStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.ShopStatus(nil), n.statuses...)
}

// 2024-06-10 is a Monday.
var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func ninetoFiveShop() *models.Shop {
	lat, lon := 0.0, 1.0
	shop := &models.Shop{
		Name:      "Corner Shop",
		Timezone:  "UTC",
		Latitude:  &lat,
		Longitude: &lon,
		BusinessHours: models.BusinessHoursList{
			{Day: "monday", TimeSlots: []availability.TimeSlot{{OpenTime: "09:00", CloseTime: "17:00"}}},
			{Day: "tuesday", TimeSlots: []availability.TimeSlot{{OpenTime: "09:00", CloseTime: "17:00"}}},
		},
		Settings: models.ShopSettings{
			BaseDeliveryFee:       10,
			RatePerKmPeak:         2,
			RatePerKmNormal:       1,
			FreeDeliveryThreshold: 200,
			MaxDeliveryDistanceKm: 150,
		},
	}
	shop.ID = uuid.New()
	return shop
}
