package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"fossilario/internal/model"
)

// FossilRepository defines fossil persistence operations.
type FossilRepository interface {
	Create(ctx context.Context, fossil *model.Fossil) error
	Update(ctx context.Context, fossil *model.Fossil) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Fossil, error)
	FindByIDWithOwner(ctx context.Context, id uint) (*model.Fossil, error)
	List(ctx context.Context, filter FossilFilter) (items []model.Fossil, total int64, err error)
}

type fossilRepository struct {
	db *gorm.DB
}

// NewFossilRepository builds a GORM-backed repository.
func NewFossilRepository(db *gorm.DB) FossilRepository {
	return &fossilRepository{db: db}
}

func (r *fossilRepository) Create(ctx context.Context, fossil *model.Fossil) error {
	return r.db.WithContext(ctx).Create(fossil).Error
}

func (r *fossilRepository) Update(ctx context.Context, fossil *model.Fossil) error {
	return r.db.WithContext(ctx).Save(fossil).Error
}

func (r *fossilRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Fossil{}, id).Error
}

func (r *fossilRepository) FindByID(ctx context.Context, id uint) (*model.Fossil, error) {
	var fossil model.Fossil
	if err := r.db.WithContext(ctx).First(&fossil, id).Error; err != nil {
		return nil, err
	}
	return &fossil, nil
}

// FindByIDWithOwner loads the fossil together with its owning user, for the
// public detail response.
func (r *fossilRepository) FindByIDWithOwner(ctx context.Context, id uint) (*model.Fossil, error) {
	var fossil model.Fossil
	if err := r.db.WithContext(ctx).Preload("User").First(&fossil, id).Error; err != nil {
		return nil, err
	}
	return &fossil, nil
}

// List applies the conjunctive filter, resolves sort and pagination, and
// returns the page together with the total count of matching rows.
func (r *fossilRepository) List(ctx context.Context, filter FossilFilter) ([]model.Fossil, int64, error) {
	filter.Normalize()

	base := r.db.WithContext(ctx).Model(&model.Fossil{}).Scopes(fossilScope(filter))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Fossil
	err := base.Session(&gorm.Session{}).
		Order(filter.orderClause()).
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// fossilScope translates the filter into WHERE conditions. Field filters are
// ANDed; the free-text query expands to an OR of case-insensitive substring
// matches. Periodo is matched by case-insensitive equality: it is effectively
// an enumerated value (Devoniano, Carbonífero, ...), so substring matching
// would conflate overlapping names.
func fossilScope(f FossilFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.Especie != "" {
			q = q.Where("LOWER(especie) LIKE ?", substr(f.Especie))
		}
		if f.Familia != "" {
			q = q.Where("LOWER(familia) LIKE ?", substr(f.Familia))
		}
		if f.Localizacao != "" {
			q = q.Where("LOWER(localizacao) LIKE ?", substr(f.Localizacao))
		}
		if f.Periodo != "" {
			q = q.Where("LOWER(periodo) = ?", strings.ToLower(f.Periodo))
		}
		if f.UserID != 0 {
			q = q.Where("user_id = ?", f.UserID)
		}
		if f.Query != "" {
			like := substr(f.Query)
			q = q.Where(
				"LOWER(especie) LIKE ? OR LOWER(familia) LIKE ? OR LOWER(periodo) LIKE ? OR LOWER(localizacao) LIKE ? OR LOWER(descricao) LIKE ?",
				like, like, like, like, like,
			)
		}
		return q
	}
}

func substr(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
