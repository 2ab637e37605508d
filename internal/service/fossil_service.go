package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"fossilario/internal/cache"
	apperrors "fossilario/internal/errors"
	"fossilario/internal/model"
	"fossilario/internal/repository"
)

const fossilCacheTTL = 5 * time.Minute

// ImageStore abstracts the uploaded-image lifecycle so the service can be
// tested without touching the filesystem.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(ref string)
}

// FossilInput carries the create payload. All four taxonomic fields are
// required after trimming.
type FossilInput struct {
	Especie     string
	Familia     string
	Periodo     string
	Localizacao string
	Descricao   *string
}

// FossilUpdate carries a partial update. Nil means "leave untouched"; a
// present empty string clears nothing for required fields (they keep their
// trimmed non-empty requirement) but clears Descricao.
type FossilUpdate struct {
	Especie     *string
	Familia     *string
	Periodo     *string
	Localizacao *string
	Descricao   *string
}

// FossilPage is the paginated list envelope.
type FossilPage struct {
	Items []model.Fossil `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
	Pages int            `json:"pages"`
}

// FossilDetail is the public detail view: the record plus the redacted
// contributor projection of its owner.
type FossilDetail struct {
	model.Fossil
	Contributor *model.Contributor `json:"contributor"`
}

// FossilService exposes catalog operations.
type FossilService interface {
	List(ctx context.Context, filter repository.FossilFilter) (*FossilPage, error)
	Get(ctx context.Context, id uint) (*FossilDetail, error)
	Create(ctx context.Context, ownerID uint, in FossilInput, image *multipart.FileHeader) (*model.Fossil, error)
	Update(ctx context.Context, callerID, id uint, in FossilUpdate, image *multipart.FileHeader) (*model.Fossil, error)
	Delete(ctx context.Context, callerID, id uint) error
}

type fossilService struct {
	fossilRepo repository.FossilRepository
	images     ImageStore
	cache      *cache.Client
}

// NewFossilService builds a FossilService.
func NewFossilService(fossilRepo repository.FossilRepository, images ImageStore, cacheClient *cache.Client) FossilService {
	return &fossilService{
		fossilRepo: fossilRepo,
		images:     images,
		cache:      cacheClient,
	}
}

// isOwner is the single ownership predicate shared by update and delete.
func isOwner(f *model.Fossil, callerID uint) bool {
	return f.UserID == callerID
}

func fossilCacheKey(id uint) string {
	return fmt.Sprintf("fossil:%d", id)
}

func (s *fossilService) List(ctx context.Context, filter repository.FossilFilter) (*FossilPage, error) {
	filter.Normalize()
	items, total, err := s.fossilRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fossils: %w", err)
	}
	if items == nil {
		items = []model.Fossil{}
	}
	return &FossilPage{
		Items: items,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *fossilService) Get(ctx context.Context, id uint) (*FossilDetail, error) {
	var cached FossilDetail
	if s.cache.GetJSON(ctx, fossilCacheKey(id), &cached) {
		return &cached, nil
	}

	fossil, err := s.fossilRepo.FindByIDWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFossilNotFound
		}
		return nil, fmt.Errorf("find fossil: %w", err)
	}

	detail := &FossilDetail{
		Fossil:      *fossil,
		Contributor: model.NewContributor(fossil.User),
	}
	detail.User = nil

	s.cache.SetJSON(ctx, fossilCacheKey(id), detail, fossilCacheTTL)
	return detail, nil
}

func (s *fossilService) Create(ctx context.Context, ownerID uint, in FossilInput, image *multipart.FileHeader) (*model.Fossil, error) {
	especie := strings.TrimSpace(in.Especie)
	familia := strings.TrimSpace(in.Familia)
	periodo := strings.TrimSpace(in.Periodo)
	localizacao := strings.TrimSpace(in.Localizacao)
	if especie == "" || familia == "" || periodo == "" || localizacao == "" {
		return nil, apperrors.ErrMissingFields
	}

	fossil := &model.Fossil{
		Especie:     especie,
		Familia:     familia,
		Periodo:     periodo,
		Localizacao: localizacao,
		Descricao:   trimOptional(in.Descricao),
		UserID:      ownerID,
	}

	if image != nil {
		ref, err := s.images.Save(image)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		fossil.ImageURL = &ref
	}

	if err := s.fossilRepo.Create(ctx, fossil); err != nil {
		return nil, fmt.Errorf("create fossil: %w", err)
	}
	return fossil, nil
}

func (s *fossilService) Update(ctx context.Context, callerID, id uint, in FossilUpdate, image *multipart.FileHeader) (*model.Fossil, error) {
	fossil, err := s.fossilRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFossilNotFound
		}
		return nil, fmt.Errorf("find fossil: %w", err)
	}
	if !isOwner(fossil, callerID) {
		return nil, apperrors.ErrNotOwner
	}

	if err := applyFieldUpdate(&fossil.Especie, in.Especie); err != nil {
		return nil, err
	}
	if err := applyFieldUpdate(&fossil.Familia, in.Familia); err != nil {
		return nil, err
	}
	if err := applyFieldUpdate(&fossil.Periodo, in.Periodo); err != nil {
		return nil, err
	}
	if err := applyFieldUpdate(&fossil.Localizacao, in.Localizacao); err != nil {
		return nil, err
	}
	if in.Descricao != nil {
		fossil.Descricao = trimOptional(in.Descricao)
	}

	if image != nil {
		ref, err := s.images.Save(image)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		if fossil.ImageURL != nil {
			s.images.Remove(*fossil.ImageURL)
		}
		fossil.ImageURL = &ref
	}

	if err := s.fossilRepo.Update(ctx, fossil); err != nil {
		return nil, fmt.Errorf("update fossil: %w", err)
	}

	_ = s.cache.Delete(ctx, fossilCacheKey(id))
	return fossil, nil
}

func (s *fossilService) Delete(ctx context.Context, callerID, id uint) error {
	fossil, err := s.fossilRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFossilNotFound
		}
		return fmt.Errorf("find fossil: %w", err)
	}
	if !isOwner(fossil, callerID) {
		return apperrors.ErrNotOwner
	}

	if fossil.ImageURL != nil {
		s.images.Remove(*fossil.ImageURL)
	}

	if err := s.fossilRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete fossil: %w", err)
	}

	_ = s.cache.Delete(ctx, fossilCacheKey(id))
	return nil
}

// applyFieldUpdate overwrites a required field when supplied; supplying an
// empty value for a required field is rejected.
func applyFieldUpdate(dst *string, src *string) error {
	if src == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*src)
	if trimmed == "" {
		return apperrors.ErrMissingFields
	}
	*dst = trimmed
	return nil
}

// trimOptional trims an optional field and maps empty to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
