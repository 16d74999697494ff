package trip

import (
	"context"
	"sync"
)

// RepositoryStub is an in-memory Repository implementation for tests.
type RepositoryStub struct {
	mu     sync.RWMutex
	trips  map[string]Trip // uid -> trip
	owners map[string]int  // uid -> userId
	nextId int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		trips:  make(map[string]Trip),
		owners: make(map[string]int),
		nextId: 1,
	}
}

func (r *RepositoryStub) WithTransaction(_ context.Context, fn func(repo Repository) error) error {
	// The stub has no rollback semantics; the function runs against live state.
	return fn(r)
}

func (r *RepositoryStub) StoreTrip(_ context.Context, userId int, trip Trip) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip.ID = r.nextId
	trip.UserID = userId
	r.nextId++
	r.trips[trip.Uid] = trip
	r.owners[trip.Uid] = userId
	return trip.ID, nil
}

func (r *RepositoryStub) GetTripByUid(_ context.Context, userId int, uid string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trips[uid]
	if !ok || r.owners[uid] != userId {
		return nil, ErrTripNotFound
	}
	copied := t
	return &copied, nil
}

func (r *RepositoryStub) GetTripByName(_ context.Context, userId int, name string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for uid, t := range r.trips {
		if t.Name == name && r.owners[uid] == userId {
			copied := t
			return &copied, nil
		}
	}
	return nil, ErrTripNotFound
}

func (r *RepositoryStub) GetTripsForUser(_ context.Context, userId int) ([]Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	trips := make([]Trip, 0, len(r.trips))
	for uid, t := range r.trips {
		if r.owners[uid] == userId {
			trips = append(trips, t)
		}
	}
	return trips, nil
}

func (r *RepositoryStub) UpdateTrip(_ context.Context, userId int, trip Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.trips[trip.Uid]
	if !ok || r.owners[trip.Uid] != userId {
		return ErrTripNotFound
	}
	trip.ID = existing.ID
	trip.UserID = userId
	trip.CreatedAt = existing.CreatedAt
	r.trips[trip.Uid] = trip
	return nil
}

func (r *RepositoryStub) DeleteTrip(_ context.Context, userId int, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[uid]; !ok || r.owners[uid] != userId {
		return ErrTripNotFound
	}
	delete(r.trips, uid)
	delete(r.owners, uid)
	return nil
}
