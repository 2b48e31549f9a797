package handlers

import (
	"net/http"

	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// MonitorHandler exposes the background monitors to admins
type MonitorHandler struct {
	monitorService        *services.ReopenMonitorService
	infrastructureMonitor *services.InfrastructureMonitorService
	wsHandler             *WebSocketHandler
}

// NewMonitorHandler creates a new monitor handler. infrastructureMonitor may be nil.
func NewMonitorHandler(monitorService *services.ReopenMonitorService, infrastructureMonitor *services.InfrastructureMonitorService, wsHandler *WebSocketHandler) *MonitorHandler {
	return &MonitorHandler{
		monitorService:        monitorService,
		infrastructureMonitor: infrastructureMonitor,
		wsHandler:             wsHandler,
	}
}

// GetMonitoringStatus godoc
// @Summary Get reopen monitor status
// @Description Current state of the temporary closure monitor and live status connections
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/monitor [get]
// @Security BearerAuth
func (h *MonitorHandler) GetMonitoringStatus(c echo.Context) error {
	status := h.monitorService.GetStatus()
	status["websocket_clients"] = h.wsHandler.GetConnectedClients()
	if h.infrastructureMonitor != nil {
		status["infrastructure"] = h.infrastructureMonitor.Status()
	}
	return c.JSON(http.StatusOK, status)
}

// HealthHandler answers load balancer probes
type HealthHandler struct {
	infrastructureMonitor *services.InfrastructureMonitorService
}

// NewHealthHandler creates a new health handler. With a nil monitor the probe always passes.
func NewHealthHandler(infrastructureMonitor *services.InfrastructureMonitorService) *HealthHandler {
	return &HealthHandler{infrastructureMonitor: infrastructureMonitor}
}

// Health godoc
// @Summary Health check
// @Description Probes postgres and redis
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	if h.infrastructureMonitor == nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	infra := h.infrastructureMonitor.Check(c.Request().Context())
	if !infra.Healthy {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":     "degraded",
			"components": infra.Components,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"components": infra.Components,
	})
}
