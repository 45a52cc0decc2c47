// Package ingredientrepo persists Ingredient aggregates. Per-branch
// expirations live in a child table keyed by (ingredient, branch).
package ingredientrepo

import (
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type IngredientDTO struct {
	ID                uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	Name              string                          `gorm:"type:varchar(255);not null;uniqueIndex:idx_ingredients_name"`
	Expired           bool                            `gorm:"not null"`
	BranchExpirations []IngredientBranchExpirationDTO `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (IngredientDTO) TableName() string {
	return "ingredients"
}

type IngredientBranchExpirationDTO struct {
	IngredientID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (IngredientBranchExpirationDTO) TableName() string {
	return "ingredient_branch_expirations"
}

func fromDomain(i *ingredient.Ingredient) IngredientDTO {
	id := i.ID().Bytes()
	expirations := make([]IngredientBranchExpirationDTO, 0)
	for _, branchID := range i.ExpiredBranches() {
		expirations = append(expirations, IngredientBranchExpirationDTO{
			IngredientID: id,
			BranchID:     branchID.Bytes(),
		})
	}

	return IngredientDTO{
		ID:                id,
		Name:              i.Name(),
		Expired:           i.IsExpired(),
		BranchExpirations: expirations,
	}
}

func toDomain(dto IngredientDTO) (*ingredient.Ingredient, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	expiredAt := make([]kernel.UUID, 0, len(dto.BranchExpirations))
	for _, e := range dto.BranchExpirations {
		branchID, branchErr := kernel.UUIDFromBytes(e.BranchID[:])
		if branchErr != nil {
			return nil, branchErr
		}
		expiredAt = append(expiredAt, branchID)
	}

	return ingredient.RestoreIngredient(id, dto.Name, dto.Expired, expiredAt)
}
