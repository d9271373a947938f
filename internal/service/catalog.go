package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/internal/repository"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
)

const catalogCacheKey = "catalog:services"

// CatalogService serves the active-service snapshot, cache-aside through
// Redis. Admin screens own the services table; this engine only reads it.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	redis       *redis.Client
	ttl         time.Duration
}

func NewCatalogService(serviceRepo repository.ServiceRepository, redisClient *redis.Client, ttl time.Duration) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		redis:       redisClient,
		ttl:         ttl,
	}
}

// Snapshot returns the active services. Cache failures fall back to the
// database; they are logged, never surfaced.
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.Service, error) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var services []domain.Service
			if jsonErr := json.Unmarshal([]byte(raw), &services); jsonErr == nil {
				return services, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logrus.WithError(customError.WrapCacheError(err)).Warn("catalog cache read")
		}
	}

	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	normalizeExclusivity(services)

	if s.redis != nil {
		if raw, err := json.Marshal(services); err == nil {
			if err := s.redis.Set(ctx, catalogCacheKey, raw, s.ttl).Err(); err != nil {
				logrus.WithError(customError.WrapCacheError(err)).Warn("catalog cache write")
			}
		}
	}

	return services, nil
}

// Invalidate drops the cached snapshot.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, catalogCacheKey).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

// Warm refreshes the cached snapshot from the database.
func (s *CatalogService) Warm(ctx context.Context) error {
	if err := s.Invalidate(ctx); err != nil {
		return err
	}
	_, err := s.Snapshot(ctx)
	return err
}

// normalizeExclusivity backfills the declared exclusivity group for legacy
// rows that predate the column and are tagged only by the name convention.
func normalizeExclusivity(services []domain.Service) {
	for i := range services {
		if services[i].ExclusivityGroup != "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(services[i].Name), "internet") {
			services[i].ExclusivityGroup = domain.ExclusivityGroupInternet
		}
	}
}
