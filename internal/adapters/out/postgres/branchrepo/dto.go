// Package branchrepo persists Branch aggregates.
package branchrepo

import (
	"restaurant/internal/core/domain/model/branch"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BranchDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_branches_address"`
	Latitude  float64   `gorm:"type:double precision;not null"`
	Longitude float64   `gorm:"type:double precision;not null"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(b *branch.Branch) BranchDTO {
	return BranchDTO{
		ID:        b.ID().Bytes(),
		Name:      b.Name(),
		Address:   b.Address(),
		Latitude:  b.Coordinates().Latitude(),
		Longitude: b.Coordinates().Longitude(),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	coords, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return branch.NewBranch(id, dto.Name, dto.Address, coords)
}
