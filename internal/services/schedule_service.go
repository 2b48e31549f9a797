package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/google/uuid"
)

// ClosureWatcher tracks shops whose temporary closure may lapse
type ClosureWatcher interface {
	Watch(shop *models.Shop)
	Unwatch(shopID uuid.UUID)
}

// ScheduleService applies owner edits to hours, closures, settings and holidays
type ScheduleService struct {
	shops        ShopStore
	availability *AvailabilityService
	watcher      ClosureWatcher
}

// NewScheduleService creates a new schedule service. watcher may be nil.
func NewScheduleService(shops ShopStore, availability *AvailabilityService, watcher ClosureWatcher) *ScheduleService {
	return &ScheduleService{
		shops:        shops,
		availability: availability,
		watcher:      watcher,
	}
}

// UpdateBusinessHours replaces the weekly schedule after checking day names and clock formats.
func (s *ScheduleService) UpdateBusinessHours(ctx context.Context, shopID uuid.UUID, records []availability.BusinessHoursRecord) (*models.ShopStatus, error) {
	if err := validateBusinessHours(records); err != nil {
		return nil, err
	}

	if err := s.shops.UpdateBusinessHours(ctx, shopID, models.BusinessHoursList(records)); err != nil {
		return nil, err
	}
	return s.availability.Refresh(ctx, shopID)
}

// UpdateTemporaryClosure stores the closure and starts or stops watching it.
func (s *ScheduleService) UpdateTemporaryClosure(ctx context.Context, shopID uuid.UUID, closure availability.TemporaryClosure) (*models.ShopStatus, error) {
	closure.ReopenTime = strings.TrimSpace(closure.ReopenTime)
	if closure.ReopenTime != "" {
		if _, ok := availability.ParseClock(closure.ReopenTime); !ok {
			return nil, fmt.Errorf("%w: reopen time %q must be HH:MM", ErrInvalidInput, closure.ReopenTime)
		}
	}
	if !closure.IsClosed {
		closure = availability.TemporaryClosure{}
	}

	if err := s.shops.UpdateTemporaryClosure(ctx, shopID, models.ClosureState(closure)); err != nil {
		return nil, err
	}

	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("reload shop %s: %w", shopID, err)
	}

	if s.watcher != nil {
		if closure.IsClosed {
			s.watcher.Watch(shop)
		} else {
			s.watcher.Unwatch(shopID)
		}
	}

	return s.availability.RefreshShop(ctx, shop), nil
}

// UpdateSettings replaces the delivery and auto-accept settings.
func (s *ScheduleService) UpdateSettings(ctx context.Context, shopID uuid.UUID, settings models.ShopSettings) (*models.ShopStatus, error) {
	if settings.BaseDeliveryFee < 0 || settings.RatePerKmPeak < 0 || settings.RatePerKmNormal < 0 ||
		settings.FreeDeliveryThreshold < 0 || settings.MaxDeliveryDistanceKm < 0 {
		return nil, fmt.Errorf("%w: fees, rates and distances must not be negative", ErrInvalidInput)
	}
	if settings.PricePerKm != nil && *settings.PricePerKm < 0 {
		return nil, fmt.Errorf("%w: price per km must not be negative", ErrInvalidInput)
	}

	if err := s.shops.UpdateSettings(ctx, shopID, settings); err != nil {
		return nil, err
	}
	return s.availability.Refresh(ctx, shopID)
}

func (s *ScheduleService) ListHolidays(ctx context.Context, shopID uuid.UUID) ([]models.SpecialHoliday, error) {
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.shops.ListHolidays(ctx, shopID)
}

// AddHoliday stores a whole-day closure range. Only the calendar dates of start and end are kept.
func (s *ScheduleService) AddHoliday(ctx context.Context, shopID uuid.UUID, start, end time.Time, reason string) (*models.SpecialHoliday, error) {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		return nil, err
	}

	holiday := &models.SpecialHoliday{
		ShopID:    shopID,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(reason),
	}
	if err := s.shops.AddHoliday(ctx, holiday); err != nil {
		return nil, fmt.Errorf("add holiday: %w", err)
	}

	if _, err := s.availability.Refresh(ctx, shopID); err != nil {
		return nil, err
	}
	return holiday, nil
}

func (s *ScheduleService) DeleteHoliday(ctx context.Context, shopID, holidayID uuid.UUID) error {
	if err := s.shops.DeleteHoliday(ctx, shopID, holidayID); err != nil {
		return err
	}
	_, err := s.availability.Refresh(ctx, shopID)
	return err
}

func validateBusinessHours(records []availability.BusinessHoursRecord) error {
	seen := make(map[time.Weekday]bool, len(records))
	for _, r := range records {
		wd, ok := availability.ParseWeekday(r.Day)
		if !ok {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidInput, r.Day)
		}
		if seen[wd] {
			return fmt.Errorf("%w: day %q listed twice", ErrInvalidInput, r.Day)
		}
		seen[wd] = true

		if r.IsClosed {
			continue
		}
		if r.OpenTime != "" || r.CloseTime != "" {
			if err := validateSlot(r.Day, availability.TimeSlot{OpenTime: r.OpenTime, CloseTime: r.CloseTime}); err != nil {
				return err
			}
		}
		for _, slot := range r.TimeSlots {
			if err := validateSlot(r.Day, slot); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateSlot(day string, slot availability.TimeSlot) error {
	if slot.Is24Hours {
		return nil
	}
	if _, ok := availability.ParseClock(slot.OpenTime); !ok {
		return fmt.Errorf("%w: %s open time %q must be HH:MM", ErrInvalidInput, day, slot.OpenTime)
	}
	if _, ok := availability.ParseClock(slot.CloseTime); !ok {
		return fmt.Errorf("%w: %s close time %q must be HH:MM", ErrInvalidInput, day, slot.CloseTime)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
