// Package menurepo persists menus and dishes together with their ingredient links.
package menurepo

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

type MenuDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
}

func (MenuDTO) TableName() string {
	return "menus"
}

// DishDTO keeps the branch of its menu so availability checks need no join.
type DishDTO struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey"`
	MenuID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	BranchID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Name       string                  `gorm:"type:varchar(255);not null"`
	PriceCents int64                   `gorm:"type:bigint;not null"`
	Available  bool                    `gorm:"not null"`
	Links      []DishIngredientLinkDTO `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
}

func (DishDTO) TableName() string {
	return "dishes"
}

type DishIngredientLinkDTO struct {
	DishID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position     int       `gorm:"type:int;not null"`
	Required     bool      `gorm:"not null"`
	QtyUnit      string    `gorm:"type:varchar(32)"`
}

func (DishIngredientLinkDTO) TableName() string {
	return "dish_ingredient_links"
}

func menuFromDomain(m *menu.Menu) MenuDTO {
	return MenuDTO{
		ID:       m.ID().Bytes(),
		BranchID: m.BranchID().Bytes(),
		Name:     m.Name(),
	}
}

func menuToDomain(dto MenuDTO) (*menu.Menu, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	return menu.NewMenu(id, branchID, dto.Name)
}

func dishFromDomain(d *menu.Dish) DishDTO {
	dishID := d.ID().Bytes()
	links := make([]DishIngredientLinkDTO, 0, len(d.Links()))
	for i, l := range d.Links() {
		links = append(links, DishIngredientLinkDTO{
			DishID:       dishID,
			IngredientID: l.IngredientID().Bytes(),
			Position:     i,
			Required:     l.IsRequired(),
			QtyUnit:      l.QtyUnit(),
		})
	}

	return DishDTO{
		ID:         dishID,
		MenuID:     d.MenuID().Bytes(),
		BranchID:   d.BranchID().Bytes(),
		Name:       d.Name(),
		PriceCents: d.PriceCents(),
		Available:  d.IsAvailable(),
		Links:      links,
	}
}

func dishToDomain(dto DishDTO) (*menu.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	menuID, err := kernel.UUIDFromBytes(dto.MenuID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	links := make([]menu.IngredientLink, 0, len(dto.Links))
	for _, l := range dto.Links {
		ingredientID, linkErr := kernel.UUIDFromBytes(l.IngredientID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		link, linkErr := menu.NewIngredientLink(ingredientID, l.Required, l.QtyUnit)
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, link)
	}

	return menu.RestoreDish(id, menuID, branchID, dto.Name, dto.PriceCents, dto.Available, links)
}
