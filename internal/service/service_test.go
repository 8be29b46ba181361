package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

type fakeUserRepo struct {
	users  map[int]domain.User
	nextID int
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]domain.User), nextID: 1}
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	all := make([]domain.User, 0, len(r.users))
	for id := 1; id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			all = append(all, user)
		}
	}
	return all, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, name, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user := domain.User{ID: r.nextID, Name: name, Email: email}
	r.users[user.ID] = user
	r.nextID++
	return &user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id int, name, email *string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}
	r.users[id] = user
	return &user, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type fakeLoginRepo struct {
	creds map[string]string
	err   error
}

func (r *fakeLoginRepo) CountCredentials(ctx context.Context, username, password string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if stored, ok := r.creds[username]; ok && stored == password {
		return 1, nil
	}
	return 0, nil
}

func (r *fakeLoginRepo) StoredPassword(ctx context.Context, username string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	stored, ok := r.creds[username]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return stored, nil
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestLoginIssuesTokenForMatchingCredential(t *testing.T) {
	logins := &fakeLoginRepo{creds: map[string]string{"admin": "admin"}}
	tokens := auth.NewTokenManager("test-secret", 160)
	svc := NewAuthService(logins, tokens)

	token, expiresAt, err := svc.Login(context.Background(), domain.Credential{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginAcceptsBcryptHashedCredential(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)

	logins := &fakeLoginRepo{creds: map[string]string{"admin": hash}}
	svc := NewAuthService(logins, auth.NewTokenManager("test-secret", 160))

	_, _, err = svc.Login(context.Background(), domain.Credential{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), domain.Credential{Username: "admin", Password: "wrong"})
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
}

func TestLoginRejectsMismatchAndUnknownUser(t *testing.T) {
	logins := &fakeLoginRepo{creds: map[string]string{"admin": "admin"}}
	svc := NewAuthService(logins, auth.NewTokenManager("test-secret", 160))

	_, _, err := svc.Login(context.Background(), domain.Credential{Username: "admin", Password: "wrong"})
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))

	_, _, err = svc.Login(context.Background(), domain.Credential{Username: "nobody", Password: "admin"})
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
}

func TestLoginClassifiesStoreFailure(t *testing.T) {
	logins := &fakeLoginRepo{err: errors.New("connection refused")}
	svc := NewAuthService(logins, auth.NewTokenManager("test-secret", 160))

	_, _, err := svc.Login(context.Background(), domain.Credential{Username: "admin", Password: "admin"})
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, err))
}

func TestRefreshClassifiesRejections(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 160)
	svc := NewAuthService(&fakeLoginRepo{creds: map[string]string{}}, tokens)

	token, _, err := tokens.Issue("admin")
	require.NoError(t, err)

	refreshed, _, err := svc.Refresh(token)
	require.NoError(t, err)
	claims, err := tokens.Verify(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, _, err = svc.Refresh("garbage")
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", errorCode(t, err))
}

func TestListAllReturnsEmptySliceNotError(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	users, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetByID(context.Background(), 42)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestCreateAssignsServerID(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Create(context.Background(), "John", "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "John", user.Name)
	assert.Equal(t, "john@example.com", user.Email)

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *got)
}

func TestUpdateOnlySuppliedFieldsChange(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Create(context.Background(), "John", "john@example.com")
	require.NoError(t, err)

	newName := "John Updated"
	updated, err := svc.Update(context.Background(), created.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "John Updated", updated.Name)
	assert.Equal(t, "john@example.com", updated.Email)

	_, err = svc.Update(context.Background(), 999, &newName, nil)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestDeleteIsNotFoundOnRepeat(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	created, err := svc.Create(context.Background(), "John", "john@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	err = svc.Delete(context.Background(), created.ID)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestDirectoryOperationsClassifyStoreFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("acquire timeout")
	svc := NewUserService(repo)

	_, err := svc.ListAll(context.Background())
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, err))

	_, err = svc.GetByID(context.Background(), 1)
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, err))

	err = svc.Delete(context.Background(), 1)
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, err))
}
