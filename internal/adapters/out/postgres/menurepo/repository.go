package menurepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerrs"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormMenuRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormMenuRepository(db *gorm.DB, tracker aggregateTracker) *GormMenuRepository {
	return &GormMenuRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMenuRepository) AddMenu(ctx context.Context, m *menu.Menu) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := menuFromDomain(m)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerrs.IsUniqueViolation(err); ok {
			return errs.NewConflictErrorWithCause("menuID", m.ID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(m.ID(), m)
	return nil
}

func (r *GormMenuRepository) GetMenu(ctx context.Context, id kernel.UUID) (*menu.Menu, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu", id.String())
		}
		return nil, err
	}

	return menuToDomain(dto)
}

// AddDish inserts the dish and its links in one statement batch.
func (r *GormMenuRepository) AddDish(ctx context.Context, dish *menu.Dish) error {
	if err := dish.Validate(); err != nil {
		return err
	}

	dto := dishFromDomain(dish)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerrs.IsUniqueViolation(err); ok {
			return errs.NewConflictErrorWithCause("dishID", dish.ID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(dish.ID(), dish)
	return nil
}

// UpdateDish writes name, price and the kill-switch. Links are immutable.
func (r *GormMenuRepository) UpdateDish(ctx context.Context, dish *menu.Dish) error {
	if err := dish.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DishDTO{}).
		Where("id = ?", dish.ID().Bytes()).
		Updates(map[string]any{
			"name":        dish.Name(),
			"price_cents": dish.PriceCents(),
			"available":   dish.IsAvailable(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dish", dish.ID().String())
	}

	r.tracker.TrackAggregate(dish.ID(), dish)
	return nil
}

func (r *GormMenuRepository) GetDish(ctx context.Context, id kernel.UUID) (*menu.Dish, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DishDTO
	if err := r.withLinks(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dish", id.String())
		}
		return nil, err
	}

	return dishToDomain(dto)
}

func (r *GormMenuRepository) GetDishes(ctx context.Context, ids []kernel.UUID) ([]*menu.Dish, error) {
	if len(ids) == 0 {
		return []*menu.Dish{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []DishDTO
	if err := r.withLinks(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return dishesToDomain(dtos)
}

// ListDishesByBranch returns dishes ordered by menu name, then dish name.
func (r *GormMenuRepository) ListDishesByBranch(ctx context.Context, branchID kernel.UUID) ([]*menu.Dish, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DishDTO
	if err := r.withLinks(ctx).
		Table("dishes").
		Select("dishes.*").
		Joins("JOIN menus ON menus.id = dishes.menu_id").
		Where("menus.branch_id = ?", branchID.Bytes()).
		Order("menus.name").
		Order("dishes.name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return dishesToDomain(dtos)
}

func (r *GormMenuRepository) withLinks(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Links", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func dishesToDomain(dtos []DishDTO) ([]*menu.Dish, error) {
	dishes := make([]*menu.Dish, 0, len(dtos))
	for _, dto := range dtos {
		d, err := dishToDomain(dto)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, nil
}
