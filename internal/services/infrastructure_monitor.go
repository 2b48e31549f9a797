package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const healthCheckTimeout = 5 * time.Second

// ComponentHealth is the outcome of one dependency probe
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// InfrastructureStatus is the last known state of every backing service
type InfrastructureStatus struct {
	Healthy    bool                       `json:"healthy"`
	Components map[string]ComponentHealth `json:"components"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type healthCheck struct {
	name  string
	probe func(ctx context.Context) error
}

// InfrastructureMonitorService probes postgres and redis periodically and keeps the latest result
type InfrastructureMonitorService struct {
	checks   []healthCheck
	interval time.Duration

	mutex     sync.RWMutex
	last      InfrastructureStatus
	isRunning bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewInfrastructureMonitorService creates a monitor for the given connections. Either may be nil.
func NewInfrastructureMonitorService(db *gorm.DB, rdb *redis.Client, interval time.Duration) *InfrastructureMonitorService {
	s := &InfrastructureMonitorService{interval: interval}
	if db != nil {
		s.addCheck("postgres", func(ctx context.Context) error {
			var result int
			return db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
		})
	}
	if rdb != nil {
		s.addCheck("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return s
}

func (s *InfrastructureMonitorService) addCheck(name string, probe func(ctx context.Context) error) {
	s.checks = append(s.checks, healthCheck{name: name, probe: probe})
}

// Start runs a check immediately and then every interval until ctx ends or Stop is called
func (s *InfrastructureMonitorService) Start(ctx context.Context) {
	s.mutex.Lock()
	if s.isRunning || s.interval <= 0 {
		s.mutex.Unlock()
		return
	}
	s.isRunning = true
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mutex.Unlock()

	log.Info().Dur("interval", s.interval).Msg("Starting infrastructure monitor")

	go func() {
		defer close(done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.Check(runCtx)
		for {
			select {
			case <-ticker.C:
				s.Check(runCtx)
			case <-runCtx.Done():
				log.Info().Msg("Infrastructure monitor stopped")
				return
			}
		}
	}()
}

// Stop ends the monitoring loop and waits for it to exit
func (s *InfrastructureMonitorService) Stop() {
	s.mutex.Lock()
	if !s.isRunning {
		s.mutex.Unlock()
		return
	}
	s.isRunning = false
	cancel, done := s.cancel, s.done
	s.mutex.Unlock()

	cancel()
	<-done
}

// Check probes every component now and stores the result
func (s *InfrastructureMonitorService) Check(ctx context.Context) InfrastructureStatus {
	status := InfrastructureStatus{
		Healthy:    true,
		Components: make(map[string]ComponentHealth, len(s.checks)),
		Timestamp:  time.Now(),
	}

	for _, c := range s.checks {
		probeCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := c.probe(probeCtx)
		cancel()

		if err != nil {
			status.Healthy = false
			status.Components[c.name] = ComponentHealth{Error: err.Error()}
			continue
		}
		status.Components[c.name] = ComponentHealth{Healthy: true}
	}

	s.mutex.Lock()
	previous := s.last
	s.last = status
	s.mutex.Unlock()

	logTransitions(previous, status)
	return status
}

// Status returns the result of the last check. Timestamp is zero before the first one.
func (s *InfrastructureMonitorService) Status() InfrastructureStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.last
}

// logTransitions reports failures on every check and recoveries once.
func logTransitions(previous, current InfrastructureStatus) {
	names := make([]string, 0, len(current.Components))
	for name := range current.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		now := current.Components[name]
		before, seen := previous.Components[name]
		switch {
		case !now.Healthy:
			log.Warn().Str("component", name).Str("error", now.Error).Msg("Infrastructure health check failed")
		case seen && !before.Healthy:
			log.Info().Str("component", name).Msg("Infrastructure component recovered")
		}
	}
}
