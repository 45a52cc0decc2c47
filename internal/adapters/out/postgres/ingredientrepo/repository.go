package ingredientrepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerrs"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormIngredientRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormIngredientRepository(db *gorm.DB, tracker aggregateTracker) *GormIngredientRepository {
	return &GormIngredientRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add returns errs.ConflictError when the ID or the name is taken.
func (r *GormIngredientRepository) Add(ctx context.Context, aggregate *ingredient.Ingredient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if constraint, ok := pgerrs.IsUniqueViolation(err); ok {
			if constraint == "idx_ingredients_name" {
				return errs.NewConflictErrorWithCause("ingredientName", aggregate.Name(), err)
			}
			return errs.NewConflictErrorWithCause("ingredientID", aggregate.ID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// SaveExpired writes only the global expired flag of aggregate.
func (r *GormIngredientRepository) SaveExpired(ctx context.Context, aggregate *ingredient.Ingredient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&IngredientDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("expired", aggregate.IsExpired())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ingredient", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// SaveBranchExpired writes only the expiration row of branchID: it is
// inserted when aggregate is expired there and deleted otherwise. Other
// branches' rows are left untouched.
func (r *GormIngredientRepository) SaveBranchExpired(
	ctx context.Context,
	aggregate *ingredient.Ingredient,
	branchID kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := branchID.Validate(); err != nil {
		return err
	}

	row := IngredientBranchExpirationDTO{
		IngredientID: aggregate.ID().Bytes(),
		BranchID:     branchID.Bytes(),
	}
	db := r.db.WithContext(ctx)

	var err error
	if aggregate.IsBranchExpired(branchID) {
		err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	} else {
		err = db.Where("ingredient_id = ? AND branch_id = ?", row.IngredientID, row.BranchID).
			Delete(&IngredientBranchExpirationDTO{}).Error
	}
	if err != nil {
		if pgerrs.IsForeignKeyViolation(err) {
			return errs.NewObjectNotFoundError("ingredient", aggregate.ID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormIngredientRepository) Get(ctx context.Context, id kernel.UUID) (*ingredient.Ingredient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto IngredientDTO
	if err := r.db.WithContext(ctx).Preload("BranchExpirations").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ingredient", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate loads the ingredient and locks its row until the surrounding
// transaction ends, serializing concurrent expiration toggles.
func (r *GormIngredientRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ingredient.Ingredient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dto IngredientDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ingredient", id.String())
		}
		return nil, err
	}
	if err := db.Where("ingredient_id = ?", dto.ID).Find(&dto.BranchExpirations).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormIngredientRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*ingredient.Ingredient, error) {
	if len(ids) == 0 {
		return []*ingredient.Ingredient{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []IngredientDTO
	if err := r.db.WithContext(ctx).
		Preload("BranchExpirations").
		Where("id IN ?", raw).
		Order("name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	ingredients := make([]*ingredient.Ingredient, 0, len(dtos))
	for _, dto := range dtos {
		i, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, i)
	}

	return ingredients, nil
}
