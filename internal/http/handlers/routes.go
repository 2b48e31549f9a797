package handlers

import (
	"context"

	"storefront/internal/app"
	"storefront/internal/http/middleware"
	"storefront/pkg/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SetupRoutes sets up all API routes. ctx bounds the status subscription.
func SetupRoutes(ctx context.Context, api *echo.Group, services *app.Services) {
	wsHandler := NewWebSocketHandler(services.AvailabilityService)
	connectStatusFeed(ctx, services, wsHandler)

	// Public routes
	availabilityHandler := NewAvailabilityHandler(services.AvailabilityService, services.DeliveryService)
	shops := api.Group("/shops/:id")
	shops.GET("/availability", availabilityHandler.GetAvailability)
	shops.POST("/delivery-quote", availabilityHandler.QuoteDelivery)

	// WebSocket endpoint (public status stream)
	api.GET("/ws/shops/:id", wsHandler.HandleShopStatus)

	// Owner routes
	scheduleHandler := NewScheduleHandler(services.ScheduleService)
	owner := api.Group("/shops/:id")
	owner.Use(middleware.JWTAuth(services.AuthService))
	owner.Use(middleware.ShopOwnerOrAdmin())
	owner.Use(middleware.RequireShopAccess())
	owner.PUT("/business-hours", scheduleHandler.UpdateBusinessHours)
	owner.PUT("/temporary-closure", scheduleHandler.UpdateTemporaryClosure)
	owner.PUT("/settings", scheduleHandler.UpdateSettings)
	owner.GET("/holidays", scheduleHandler.ListHolidays)
	owner.POST("/holidays", scheduleHandler.AddHoliday)
	owner.DELETE("/holidays/:holiday_id", scheduleHandler.DeleteHoliday)

	// System admin routes
	zoneHandler := NewZoneHandler(services.ZoneService)
	monitorHandler := NewMonitorHandler(services.ReopenMonitorService, services.InfrastructureMonitor, wsHandler)
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(services.AuthService))
	admin.Use(middleware.SystemAdminOnly())
	admin.POST("/zones", zoneHandler.CreateZone)
	admin.GET("/zones", zoneHandler.ListZones)
	admin.POST("/zones/:id/contains", zoneHandler.Contains)
	admin.GET("/monitor", monitorHandler.GetMonitoringStatus)
}

// connectStatusFeed routes status changes to WebSocket clients. With redis every instance
// receives every change through the pub/sub channel; without it changes stay local.
func connectStatusFeed(ctx context.Context, services *app.Services, wsHandler *WebSocketHandler) {
	if services.StatusCache == nil {
		services.AvailabilityService.SetNotifier(wsHandler)
		return
	}

	err := services.StatusCache.Subscribe(ctx, func(status models.ShopStatus) {
		wsHandler.BroadcastShopStatus(&status)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to subscribe to status changes, live updates disabled")
	}
}
