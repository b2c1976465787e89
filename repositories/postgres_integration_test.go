//go:build integration

package repositories_test

import (
	"testing"
	"time"

	"gin-shopcart/infra"
	"gin-shopcart/models"
	"gin-shopcart/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type postgresSuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	db        *gorm.DB
}

// entry point to run the tests in the suite
func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(postgresSuite))
}

// before all tests in the suite
func (suite *postgresSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("shop"),
		postgres.BasicWaitStrategies(),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.db, err = gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(infra.Migrate(suite.db))
}

// after all tests in the suite
func (suite *postgresSuite) TearDownSuite() {
	if suite.db != nil {
		if sqlDB, err := suite.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if suite.container != nil {
		_ = testcontainers.TerminateContainer(suite.container)
	}
}

// after each test
func (suite *postgresSuite) TearDownTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE cart_entries, details, items, users CASCADE").Error)
}

func (suite *postgresSuite) TestPagingAndFilter() {
	t := suite.T()
	ctx := t.Context()
	items := repositories.NewItemRepository(suite.db)

	for _, name := range []string{"Dell XPS 15", "Google Pixel 7", "HP Spectre x360 14", "No name psu"} {
		_, err := items.Create(ctx, models.Item{Name: name, Type: "Laptop", Price: "100$", CreatedAt: time.Now()})
		require.NoError(t, err)
	}

	page, count, err := items.FindPage(ctx, repositories.ItemPageQuery{
		Offset: 0, Limit: 2, SortColumn: "name", Descending: true, Filter: "o",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	if diff := cmp.Diff([]string{"No name psu", "HP Spectre x360 14"}, names(page)); diff != "" {
		t.Errorf("FindPage mismatch (-want +got):\n%s", diff)
	}
}

func (suite *postgresSuite) TestDuplicateNameIsTranslated() {
	t := suite.T()
	ctx := t.Context()
	items := repositories.NewItemRepository(suite.db)
	name := gofakeit.ProductName()

	_, err := items.Create(ctx, models.Item{Name: name, Price: "1$", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = items.Create(ctx, models.Item{Name: name, Price: "1$", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func (suite *postgresSuite) TestDeleteCascadesToCart() {
	t := suite.T()
	ctx := t.Context()
	items := repositories.NewItemRepository(suite.db)
	carts := repositories.NewCartRepository(suite.db)
	details := repositories.NewDetailRepository(suite.db)

	user, err := repositories.NewAuthRepository(suite.db).CreateUser(ctx, models.User{
		Username: gofakeit.Username(), Email: gofakeit.Email(), Password: "hash",
	})
	require.NoError(t, err)
	item, err := items.Create(ctx, models.Item{Name: "Doomed", Price: "1$", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = details.Create(ctx, item.ID, models.Detail{Name: "Weight", Value: "1kg"})
	require.NoError(t, err)
	require.NoError(t, carts.Add(ctx, user.ID, item.ID))

	_, err = items.Delete(ctx, item.ID)
	require.NoError(t, err)

	cart, err := carts.FindItems(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}
