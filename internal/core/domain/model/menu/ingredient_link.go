package menu

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrIngredientLinkIsNotConstructed = errors.New(
	"IngredientLink must be created via NewIngredientLink constructor")

// IngredientLink ties a dish to an ingredient. QtyUnit is free text such as
// "200 g" and may be empty.
type IngredientLink struct {
	ingredientID kernel.UUID
	required     bool
	qtyUnit      string
	guard        guard.ConstructorGuard
}

func NewIngredientLink(ingredientID kernel.UUID, required bool, qtyUnit string) (IngredientLink, error) {
	if err := ingredientID.Validate(); err != nil {
		return IngredientLink{}, err
	}

	return IngredientLink{
		ingredientID: ingredientID,
		required:     required,
		qtyUnit:      strings.TrimSpace(qtyUnit),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (l IngredientLink) Validate() error {
	return l.guard.Validate(ErrIngredientLinkIsNotConstructed)
}

func (l IngredientLink) IngredientID() kernel.UUID {
	return l.ingredientID
}

func (l IngredientLink) IsRequired() bool {
	return l.required
}

func (l IngredientLink) QtyUnit() string {
	return l.qtyUnit
}
