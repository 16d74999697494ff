package user

import (
	"context"
	"sync"
)

// StubUserRepo is an in-memory Repo implementation for tests.
type StubUserRepo struct {
	mu     sync.RWMutex
	users  map[int]User
	nextId int
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{
		users:  make(map[int]User),
		nextId: 1,
	}
}

func (r *StubUserRepo) CreateUser(_ context.Context, user User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Id = r.nextId
	r.users[user.Id] = user
	r.nextId++
	return user.Id, nil
}

func (r *StubUserRepo) GetUser(_ context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *StubUserRepo) GetUserByUid(_ context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *StubUserRepo) DeleteUser(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *StubUserRepo) GetAllUsers(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *StubUserRepo) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return false, nil
		}
	}
	return true, nil
}
