// Package availabilityrepo persists per-branch ingredient availability overrides.
package availabilityrepo

import (
	"time"

	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchAvailabilityDTO is unique per (branch, ingredient) through its composite key.
type BranchAvailabilityDTO struct {
	BranchID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Available    bool      `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	UpdatedBy    string    `gorm:"type:varchar(255);not null"`
}

func (BranchAvailabilityDTO) TableName() string {
	return "branch_ingredient_availability"
}

func fromDomain(r *ingredient.BranchAvailability) BranchAvailabilityDTO {
	return BranchAvailabilityDTO{
		BranchID:     r.BranchID().Bytes(),
		IngredientID: r.IngredientID().Bytes(),
		Available:    r.IsAvailable(),
		UpdatedAt:    r.UpdatedAt(),
		UpdatedBy:    r.UpdatedBy(),
	}
}

func toDomain(dto BranchAvailabilityDTO) (*ingredient.BranchAvailability, error) {
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	ingredientID, err := kernel.UUIDFromBytes(dto.IngredientID[:])
	if err != nil {
		return nil, err
	}
	return ingredient.NewBranchAvailability(branchID, ingredientID, dto.Available, dto.UpdatedBy, dto.UpdatedAt)
}
