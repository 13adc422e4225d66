package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/repository"
	"github.com/jhoicas/gametech-stock/pkg/jwt"
)

// TokenIssuer emite el JWT de sesión (pkg/jwt.Signer).
type TokenIssuer interface {
	Issue(userID int, role string) (jwt.Token, error)
}

// ActiveUserSetter parte de la sesión de stock que conoce al usuario que inició sesión.
type ActiveUserSetter interface {
	RememberUser(u *entity.User)
	SetActiveUser(id int) error
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	session  ActiveUserSetter
	tokens   TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth. session puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, session ActiveUserSetter, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, session: session, tokens: tokens}
}

// Login verifica usuario/contraseña, genera JWT y deja al usuario como activo en la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByLogin(ctx, strings.TrimSpace(in.Login))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !entity.ValidRole(user.Role) {
		return nil, domain.ErrForbidden
	}
	token, err := uc.tokens.Issue(user.ID, strings.ToUpper(user.Role))
	if err != nil {
		return nil, err
	}
	if uc.session != nil {
		uc.session.RememberUser(user)
		if err := uc.session.SetActiveUser(user.ID); err != nil {
			return nil, err
		}
	}
	return &dto.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      userResponse(user),
	}, nil
}

// Me datos del usuario dueño del token. Un usuario dado de baja después del login da ErrUserNotFound.
func (uc *AuthUseCase) Me(ctx context.Context, userID int) (dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return userResponse(user), nil
}

func userResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Login: u.Login, Role: u.Role}
}

// HashPassword hashea una contraseña para guardarla en usuarios.password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
