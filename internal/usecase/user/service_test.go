package user

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	m := make(map[int64]domain.User, len(users))
	nextID := int64(1)
	for _, u := range users {
		m[u.ID] = u
		if u.ID >= nextID {
			nextID = u.ID + 1
		}
	}
	return &fakeUserRepo{users: m, nextID: nextID}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	res := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

func (f *fakeUserRepo) FetchAll(context.Context) ([]domain.User, error) {
	res := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		res = append(res, u)
	}
	return res, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

const testSecret = "test-secret"

func newTestService(repo *fakeUserRepo) *Service {
	return NewService(repo, []byte(testSecret), time.Hour)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	err := svc.Register(context.Background(), "Alice", "alice", "s3cret-pass")
	require.NoError(t, err)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo(domain.User{ID: 1, Username: "alice"})
	svc := newTestService(repo)

	err := svc.Register(context.Background(), "Alice", "alice", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(domain.User{ID: 7, Username: "alice", Password: string(hashed), Role: domain.RoleAdmin})
	svc := newTestService(repo)

	tokenStr, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, domain.RoleAdmin, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(domain.User{ID: 7, Username: "alice", Password: string(hashed)})
	svc := newTestService(repo)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-pass-123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(domain.User{ID: 7, Username: "alice", Password: string(hashed)})
	svc := newTestService(repo)

	err = svc.EditPassword(context.Background(), 7, "wrong", "new-pass-123")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	err = svc.EditPassword(context.Background(), 7, "old-pass-123", "new-pass-123")
	require.NoError(t, err)

	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("new-pass-123")))
}
