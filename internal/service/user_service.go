package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fossilario/internal/cache"
	apperrors "fossilario/internal/errors"
	"fossilario/internal/model"
	"fossilario/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileUpdate carries the self-service profile update. Nil means "leave
// untouched". For the nullable public-profile fields an empty string clears
// the value (stored as NULL).
type ProfileUpdate struct {
	Nome  *string
	Email *string

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

	SenhaAtual *string
	NovaSenha  *string
}

// UserService exposes profile operations.
type UserService interface {
	Me(ctx context.Context, id uint) (*model.User, error)
	UpdateMe(ctx context.Context, id uint, in ProfileUpdate) (*model.User, error)
	PublicProfile(ctx context.Context, id uint) (*model.Contributor, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, cacheClient *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cacheClient}
}

func publicProfileCacheKey(id uint) string {
	return fmt.Sprintf("user:public:%d", id)
}

func (s *userService) Me(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, id uint, in ProfileUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Nome != nil && strings.TrimSpace(*in.Nome) != "" {
		user.Nome = strings.TrimSpace(*in.Nome)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.TrimSpace(*in.Email)
		if email != user.Email {
			if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil && existing.ID != id {
				return nil, apperrors.ErrEmailTaken
			}
			user.Email = email
		}
	}

	applyNullable(&user.Role, in.Role)
	applyNullable(&user.Affiliation, in.Affiliation)
	applyNullable(&user.City, in.City)
	applyNullable(&user.State, in.State)
	applyNullable(&user.Country, in.Country)
	applyNullable(&user.Lattes, in.Lattes)

	if in.ShowName != nil {
		user.ShowName = *in.ShowName
	}
	if in.ShowAffiliation != nil {
		user.ShowAffiliation = *in.ShowAffiliation
	}
	if in.ShowContact != nil {
		user.ShowContact = *in.ShowContact
	}
	applyNullable(&user.ContactPublic, in.ContactPublic)
	if err := enforceContactInvariant(user); err != nil {
		return nil, err
	}

	if in.NovaSenha != nil && *in.NovaSenha != "" {
		if in.SenhaAtual == nil ||
			bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(*in.SenhaAtual)) != nil {
			return nil, apperrors.ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.NovaSenha), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Senha = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, publicProfileCacheKey(id))
	return user, nil
}

func (s *userService) PublicProfile(ctx context.Context, id uint) (*model.Contributor, error) {
	var cached model.Contributor
	if s.cache.GetJSON(ctx, publicProfileCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	contributor := model.NewContributor(user)
	s.cache.SetJSON(ctx, publicProfileCacheKey(id), contributor, profileCacheTTL)
	return contributor, nil
}

// applyNullable overwrites a nullable column when the field was supplied;
// empty input clears the column.
func applyNullable(dst **string, src *string) {
	if src == nil {
		return
	}
	trimmed := strings.TrimSpace(*src)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}
