package service

import (
	"context"

	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// UserService executes directory operations. Each call is one stored
// procedure round trip on a connection the adapter acquires and releases
// for that call alone; failures surface classified, never retried.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListAll returns every directory record; an empty directory yields an
// empty slice, not an error.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return users, nil
}

// GetByID returns the matching record or NotFound.
func (s *UserService) GetByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if user == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return user, nil
}

// Create inserts a new record and returns it with the server-assigned id.
func (s *UserService) Create(ctx context.Context, name, email string) (*domain.User, error) {
	user, err := s.users.Create(ctx, name, email)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return user, nil
}

// Update applies a partial update; nil fields keep their current value.
// Returns NotFound when no row matches the id.
func (s *UserService) Update(ctx context.Context, id int, name, email *string) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, name, email)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if user == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return user, nil
}

// Delete removes the record, reporting NotFound when nothing was affected.
// A second delete of the same id reports NotFound again.
func (s *UserService) Delete(ctx context.Context, id int) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if !deleted {
		return apperrors.NewNotFound("User")
	}
	return nil
}
