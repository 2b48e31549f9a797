package app

import (
	"context"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/repo"
	"storefront/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB                    *gorm.DB
	Redis                 *redis.Client
	AuthService           *auth.Service
	ShopRepo              *repo.ShopRepository
	ZoneRepo              *repo.ZoneRepository
	StatusCache           *cache.StatusCache
	AvailabilityService   *services.AvailabilityService
	DeliveryService       *services.DeliveryService
	ZoneService           *services.ZoneService
	ScheduleService       *services.ScheduleService
	ReopenMonitorService  *services.ReopenMonitorService
	InfrastructureMonitor *services.InfrastructureMonitorService
}

// NewServices creates a new services container. Redis is optional: without REDIS_URL statuses
// are not cached and changes are pushed to local WebSocket clients only.
func NewServices(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Services, error) {
	shopRepo := repo.NewShopRepository(db)
	zoneRepo := repo.NewZoneRepository(db)

	var (
		redisClient *redis.Client
		statusCache *cache.StatusCache
		statusStore services.StatusStore
	)
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
		statusCache = cache.NewStatusCache(client, cfg.StatusCacheTTL)
		statusStore = statusCache
		log.Info().Dur("ttl", cfg.StatusCacheTTL).Msg("Status cache enabled")
	} else {
		log.Warn().Msg("REDIS_URL not set, status cache disabled")
	}

	availabilityService := services.NewAvailabilityService(shopRepo, statusStore, cfg.DefaultLocation)
	monitor := services.NewReopenMonitorService(shopRepo, availabilityService, cfg.ReopenCheckInterval)

	return &Services{
		DB:                    db,
		Redis:                 redisClient,
		AuthService:           auth.NewService(cfg.JWTSecret, cfg.JWTAccessDuration),
		ShopRepo:              shopRepo,
		ZoneRepo:              zoneRepo,
		StatusCache:           statusCache,
		AvailabilityService:   availabilityService,
		DeliveryService:       services.NewDeliveryService(shopRepo, zoneRepo, cfg.DefaultLocation),
		ZoneService:           services.NewZoneService(zoneRepo),
		ScheduleService:       services.NewScheduleService(shopRepo, availabilityService, monitor),
		ReopenMonitorService:  monitor,
		InfrastructureMonitor: services.NewInfrastructureMonitorService(db, redisClient, cfg.HealthCheckInterval),
	}, nil
}

// Close releases the connections held by the container
func (s *Services) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}
