package trip

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/utils"
	"github.com/wonderplan/wonderplan/pkg/user"
)

const (
	cacheTTL             = 5 * time.Minute
	cacheCleanupInterval = 10 * time.Minute
)

type Service struct {
	repo      Repository
	nameCache *cache.Cache
	clock     utils.Clock
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		nameCache: cache.New(cacheTTL, cacheCleanupInterval),
		clock:     &utils.SystemClock{},
	}
}

func (s *Service) CreateTrip(ctx context.Context, trip Trip) (*Trip, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if trip.Uid == "" {
		trip.Uid = uuid.New().String()
	}
	trip.UserID = userId
	trip.CreatedAt = s.clock.Now()

	tripId, err := s.repo.StoreTrip(ctx, userId, trip)
	if err != nil {
		return nil, fmt.Errorf("failed to store trip: %w", err)
	}
	trip.ID = tripId

	return &trip, nil
}

// GetTripByName serves reads through a short-lived per-process cache. The
// auto-scheduler resolves trips by name on every request, so repeated
// lookups of the same trip stay off the database.
func (s *Service) GetTripByName(ctx context.Context, name string) (*Trip, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	key := nameCacheKey(userId, name)
	if cached, found := s.nameCache.Get(key); found {
		log.Tracef("trip cache hit: %s", key)
		trip := cached.(Trip)
		return &trip, nil
	}

	trip, err := s.repo.GetTripByName(ctx, userId, name)
	if err != nil {
		return nil, err
	}
	s.nameCache.Set(key, *trip, cache.DefaultExpiration)
	return trip, nil
}

func (s *Service) GetTripByUid(ctx context.Context, uid string) (*Trip, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetTripByUid(ctx, userId, uid)
}

func (s *Service) GetTrips(ctx context.Context) ([]Trip, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetTripsForUser(ctx, userId)
}

func (s *Service) UpdateTrip(ctx context.Context, trip Trip) (*Trip, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.GetTripByUid(ctx, userId, trip.Uid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTrip(ctx, userId, trip); err != nil {
		return nil, err
	}
	// A rename leaves the trip cached under its previous name, so evict both.
	s.nameCache.Delete(nameCacheKey(userId, existing.Name))
	s.nameCache.Delete(nameCacheKey(userId, trip.Name))
	return &trip, nil
}

func (s *Service) DeleteTrip(ctx context.Context, uid string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	trip, err := s.repo.GetTripByUid(ctx, userId, uid)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTrip(ctx, userId, uid); err != nil {
		return err
	}
	s.nameCache.Delete(nameCacheKey(userId, trip.Name))
	return nil
}

func nameCacheKey(userId int, name string) string {
	return strconv.Itoa(userId) + "/" + name
}
