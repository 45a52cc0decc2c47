package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"restaurant/internal/core/domain/model/branch"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// Catalog is the seed file layout. IDs are fixed in the file so that a
// second run collides with the first and is skipped.
type Catalog struct {
	Ingredients []IngredientSpec `yaml:"ingredients"`
	Branches    []BranchSpec     `yaml:"branches"`
}

type IngredientSpec struct {
	Key  string `yaml:"key"`
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type BranchSpec struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Address   string     `yaml:"address"`
	Latitude  float64    `yaml:"latitude"`
	Longitude float64    `yaml:"longitude"`
	Menus     []MenuSpec `yaml:"menus"`
}

type MenuSpec struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Dishes []DishSpec `yaml:"dishes"`
}

type DishSpec struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	PriceCents  int64      `yaml:"priceCents"`
	Ingredients []LinkSpec `yaml:"ingredients"`
}

type LinkSpec struct {
	Ingredient string `yaml:"ingredient"`
	Required   bool   `yaml:"required"`
	QtyUnit    string `yaml:"qtyUnit"`
}

func LoadCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

// plan is the catalog turned into domain objects, in insertion order.
type plan struct {
	ingredients []*ingredient.Ingredient
	branches    []*branch.Branch
	menus       []*menu.Menu
	dishes      []*menu.Dish
}

// build validates the whole catalog before anything is written.
func (c Catalog) build() (plan, error) {
	var (
		p       plan
		errList []error
	)

	byKey := make(map[string]kernel.UUID, len(c.Ingredients))
	for _, is := range c.Ingredients {
		id, err := kernel.UUIDFromString(is.ID)
		if err != nil {
			errList = append(errList, fmt.Errorf("ingredient %q: %w", is.Key, err))
			continue
		}
		if _, dup := byKey[is.Key]; dup {
			errList = append(errList, fmt.Errorf("ingredient %q: %w", is.Key, errs.NewConflictError("key", is.Key)))
			continue
		}
		ing, err := ingredient.NewIngredient(id, is.Name)
		if err != nil {
			errList = append(errList, fmt.Errorf("ingredient %q: %w", is.Key, err))
			continue
		}
		byKey[is.Key] = id
		p.ingredients = append(p.ingredients, ing)
	}

	for _, bs := range c.Branches {
		b, err := bs.build()
		if err != nil {
			errList = append(errList, fmt.Errorf("branch %q: %w", bs.Name, err))
			continue
		}
		p.branches = append(p.branches, b)

		for _, ms := range bs.Menus {
			m, dishes, menuErr := ms.build(b.ID(), byKey)
			if menuErr != nil {
				errList = append(errList, fmt.Errorf("branch %q: menu %q: %w", bs.Name, ms.Name, menuErr))
				continue
			}
			p.menus = append(p.menus, m)
			p.dishes = append(p.dishes, dishes...)
		}
	}

	return p, errors.Join(errList...)
}

func (bs BranchSpec) build() (*branch.Branch, error) {
	id, err := kernel.UUIDFromString(bs.ID)
	if err != nil {
		return nil, err
	}
	coords, err := kernel.NewCoordinates(bs.Latitude, bs.Longitude)
	if err != nil {
		return nil, err
	}
	return branch.NewBranch(id, bs.Name, bs.Address, coords)
}

func (ms MenuSpec) build(branchID kernel.UUID, byKey map[string]kernel.UUID) (*menu.Menu, []*menu.Dish, error) {
	id, err := kernel.UUIDFromString(ms.ID)
	if err != nil {
		return nil, nil, err
	}
	m, err := menu.NewMenu(id, branchID, ms.Name)
	if err != nil {
		return nil, nil, err
	}

	var errList []error
	dishes := make([]*menu.Dish, 0, len(ms.Dishes))
	for _, ds := range ms.Dishes {
		d, dishErr := ds.build(m, byKey)
		if dishErr != nil {
			errList = append(errList, fmt.Errorf("dish %q: %w", ds.Name, dishErr))
			continue
		}
		dishes = append(dishes, d)
	}
	if err = errors.Join(errList...); err != nil {
		return nil, nil, err
	}
	return m, dishes, nil
}

func (ds DishSpec) build(m *menu.Menu, byKey map[string]kernel.UUID) (*menu.Dish, error) {
	id, err := kernel.UUIDFromString(ds.ID)
	if err != nil {
		return nil, err
	}

	links := make([]menu.IngredientLink, 0, len(ds.Ingredients))
	for _, ls := range ds.Ingredients {
		ingredientID, ok := byKey[ls.Ingredient]
		if !ok {
			return nil, errs.NewObjectNotFoundError("ingredient", ls.Ingredient)
		}
		link, linkErr := menu.NewIngredientLink(ingredientID, ls.Required, ls.QtyUnit)
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, link)
	}

	return menu.NewDish(id, m, ds.Name, ds.PriceCents, links)
}

// Report counts what a seed run did.
type Report struct {
	Inserted int
	Skipped  int
}

// Seeder writes a catalog one entity per transaction, so a conflict only
// skips the entity that caused it.
type Seeder struct {
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

func NewSeeder(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *Seeder {
	return &Seeder{uowFactory: uowFactory, logger: logger.With("component", "seeder")}
}

func (s *Seeder) Seed(ctx context.Context, c Catalog) (Report, error) {
	p, err := c.build()
	if err != nil {
		return Report{}, err
	}

	var report Report
	steps := make([]func(ports.UnitOfWork) (string, error), 0,
		len(p.ingredients)+len(p.branches)+len(p.menus)+len(p.dishes))

	for _, ing := range p.ingredients {
		steps = append(steps, func(uow ports.UnitOfWork) (string, error) {
			return "ingredient " + ing.Name(), uow.IngredientRepository().Add(ctx, ing)
		})
	}
	for _, b := range p.branches {
		steps = append(steps, func(uow ports.UnitOfWork) (string, error) {
			return "branch " + b.Name(), uow.BranchRepository().Add(ctx, b)
		})
	}
	for _, m := range p.menus {
		steps = append(steps, func(uow ports.UnitOfWork) (string, error) {
			return "menu " + m.Name(), uow.MenuRepository().AddMenu(ctx, m)
		})
	}
	for _, d := range p.dishes {
		steps = append(steps, func(uow ports.UnitOfWork) (string, error) {
			return "dish " + d.Name(), uow.MenuRepository().AddDish(ctx, d)
		})
	}

	for _, step := range steps {
		inserted, stepErr := s.apply(ctx, step)
		if stepErr != nil {
			return report, stepErr
		}
		if inserted {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}

	return report, nil
}

func (s *Seeder) apply(ctx context.Context, step func(ports.UnitOfWork) (string, error)) (_ bool, err error) {
	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback(ctx)
		}
	}()

	what, err := step(uow)
	if errors.Is(err, errs.ErrConflict) {
		s.logger.WarnContext(ctx, "Skipping existing entry", "entry", what, "error", err)
		return false, uow.Rollback(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return true, nil
}
