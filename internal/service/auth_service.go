package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fossilario/internal/auth"
	apperrors "fossilario/internal/errors"
	"fossilario/internal/model"
	"fossilario/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the registration payload after handler validation.
// Required fields are plain strings; optional profile attributes are pointers
// so "absent" and "empty" stay distinguishable.
type RegisterInput struct {
	Nome  string
	Email string
	Senha string

	Role        *string
	Affiliation *string
	City        *string
	State       *string
	Country     *string
	Lattes      *string

	ShowName        *bool
	ShowAffiliation *bool
	ShowContact     *bool
	ContactPublic   *string
}

// AuthService handles credential issuance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, user *model.User, err error)
	Login(ctx context.Context, email, senha string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password and issues a token.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, *model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Nome:  strings.TrimSpace(in.Nome),
		Email: strings.TrimSpace(in.Email),
		Senha: string(hashed),

		Role:        in.Role,
		Affiliation: in.Affiliation,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
		Lattes:      in.Lattes,

		ShowName:        boolOr(in.ShowName, true),
		ShowAffiliation: boolOr(in.ShowAffiliation, true),
		ShowContact:     boolOr(in.ShowContact, false),
		ContactPublic:   in.ContactPublic,
	}

	if err := enforceContactInvariant(user); err != nil {
		return "", nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both map to the same error so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, email, senha string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(senha)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// enforceContactInvariant keeps ContactPublic consistent with ShowContact:
// enabled requires a non-empty contact, disabled forces null.
func enforceContactInvariant(u *model.User) error {
	if u.ShowContact {
		if u.ContactPublic == nil || strings.TrimSpace(*u.ContactPublic) == "" {
			return apperrors.ErrContactRequired
		}
		trimmed := strings.TrimSpace(*u.ContactPublic)
		u.ContactPublic = &trimmed
		return nil
	}
	u.ContactPublic = nil
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
