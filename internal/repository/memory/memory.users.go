package memory

import (
	"context"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

type UserRepo struct {
	db *DB
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return errors.NewValidationError("email already registered", nil)
		}
	}
	c := *user
	r.db.users[user.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	if u, ok := r.db.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

// SetActive toggles a user's active flag. There is no API for it; tests
// and operators use it to suspend accounts.
func (r *UserRepo) SetActive(id string, active bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	u.IsActive = active
	return nil
}

// SetSuperuser grants or revokes catalog write access.
func (r *UserRepo) SetSuperuser(id string, superuser bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	u.IsSuperuser = superuser
	return nil
}
