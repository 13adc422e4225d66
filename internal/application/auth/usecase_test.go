package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gametech-stock/internal/application/auth"
	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	pkgjwt "github.com/jhoicas/gametech-stock/pkg/jwt"
)

type fakeUserRepo struct{ users []*entity.User }

func (r fakeUserRepo) GetByID(_ context.Context, id int) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r fakeUserRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r fakeUserRepo) List(context.Context) ([]*entity.User, error) { return r.users, nil }

type fakeSession struct {
	remembered map[int]*entity.User
	active     int
}

func (s *fakeSession) RememberUser(u *entity.User) {
	if s.remembered == nil {
		s.remembered = map[int]*entity.User{}
	}
	s.remembered[u.ID] = u
}

func (s *fakeSession) SetActiveUser(id int) error {
	if _, ok := s.remembered[id]; !ok {
		return domain.ErrUserNotFound
	}
	s.active = id
	return nil
}

func newAuth(t *testing.T) (*auth.AuthUseCase, *fakeSession) {
	t.Helper()
	hash, err := auth.HashPassword("clave-segura")
	require.NoError(t, err)
	repo := fakeUserRepo{users: []*entity.User{
		{ID: 3, Name: "Luis", Login: "luis", PasswordHash: hash, Role: entity.RoleLogistics},
		{ID: 4, Name: "Raro", Login: "raro", PasswordHash: hash, Role: "INVITADO"},
	}}
	sess := &fakeSession{}
	return auth.NewAuthUseCase(repo, sess, newSigner(t)), sess
}

func newSigner(t *testing.T) *pkgjwt.Signer {
	t.Helper()
	s, err := pkgjwt.NewSigner("s3cret", "test", 10*time.Minute)
	require.NoError(t, err)
	return s
}

func TestLogin_CredencialesValidasActivanUsuario(t *testing.T) {
	uc, sess := newAuth(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Login: " luis ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.User.ID)
	assert.Equal(t, 3, sess.active)

	assert.WithinDuration(t, time.Now().Add(10*time.Minute), resp.ExpiresAt, time.Minute)

	claims, err := newSigner(t).Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, entity.RoleLogistics, claims.Role)
}

func TestMe_DevuelveUsuarioSinCredenciales(t *testing.T) {
	uc, _ := newAuth(t)

	me, err := uc.Me(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, dto.UserResponse{ID: 3, Name: "Luis", Login: "luis", Role: entity.RoleLogistics}, me)

	_, err = uc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, sess := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "luis", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, sess.active)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_RolDesconocido(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "raro", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
