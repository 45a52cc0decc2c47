package availabilityrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormAvailabilityRepository struct {
	db *gorm.DB
}

func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

func (r *GormAvailabilityRepository) Get(
	ctx context.Context,
	branchID, ingredientID kernel.UUID,
) (*ingredient.BranchAvailability, error) {
	var dto BranchAvailabilityDTO
	err := r.db.WithContext(ctx).
		First(&dto, "branch_id = ? AND ingredient_id = ?", branchID.Bytes(), ingredientID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("availability", branchID.String()+"/"+ingredientID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAvailabilityRepository) ListByBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*ingredient.BranchAvailability, error) {
	var dtos []BranchAvailabilityDTO
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID.Bytes()).
		Order("ingredient_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*ingredient.BranchAvailability, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// Upsert relies on the composite key: INSERT ... ON CONFLICT DO UPDATE.
func (r *GormAvailabilityRepository) Upsert(ctx context.Context, record *ingredient.BranchAvailability) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"available", "updated_at", "updated_by"}),
	}).Create(&dto).Error
}
