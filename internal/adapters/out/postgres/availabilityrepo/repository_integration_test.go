package availabilityrepo_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/availabilityrepo"
	"restaurant/internal/adapters/out/postgres/pgtest"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AvailabilityRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	db         *gorm.DB
	repository *availabilityrepo.GormAvailabilityRepository
}

func (suite *AvailabilityRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
	suite.Require().NoError(suite.db.AutoMigrate(&availabilityrepo.BranchAvailabilityDTO{}))
	suite.repository = availabilityrepo.NewGormAvailabilityRepository(suite.db)
}

func (suite *AvailabilityRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *AvailabilityRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE branch_ingredient_availability").Error)
}

func (suite *AvailabilityRepositoryIntegrationTestSuite) TestUpsert_CreatesThenUpdates() {
	ctx := context.Background()
	branchID, ingredientID := kernel.NewUUID(), kernel.NewUUID()
	at := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	record, err := ingredient.NewBranchAvailability(branchID, ingredientID, true, "manager@north", at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Upsert(ctx, record))

	suite.Require().NoError(record.Set(false, "clerk@north", at.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Upsert(ctx, record))

	got, err := suite.repository.Get(ctx, branchID, ingredientID)
	suite.Require().NoError(err)
	suite.False(got.IsAvailable())
	suite.Equal("clerk@north", got.UpdatedBy())
	suite.True(at.Add(time.Hour).Equal(got.UpdatedAt()))

	var count int64
	suite.Require().NoError(suite.db.Model(&availabilityrepo.BranchAvailabilityDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *AvailabilityRepositoryIntegrationTestSuite) TestListByBranch() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	now := time.Now().UTC()

	for _, available := range []bool{true, false} {
		r, err := ingredient.NewBranchAvailability(branchID, kernel.NewUUID(), available, "ops", now)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Upsert(ctx, r))
	}
	other, err := ingredient.NewBranchAvailability(kernel.NewUUID(), kernel.NewUUID(), true, "ops", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Upsert(ctx, other))

	records, err := suite.repository.ListByBranch(ctx, branchID)
	suite.Require().NoError(err)
	suite.Len(records, 2)
	for _, r := range records {
		suite.Equal(branchID, r.BranchID())
	}
}

func (suite *AvailabilityRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestAvailabilityRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityRepositoryIntegrationTestSuite))
}
