package productrepo_test

import (
	"context"
	"testing"
	"time"

	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
	tracker    *MockAggregateTracker
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = productrepo.NewGormProductRepository(suite.db, suite.tracker)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) addProduct(stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), "Keyboard", 4500, stock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	ctx := context.Background()
	p := suite.addProduct(10)

	stored, err := suite.repository.Get(ctx, p.ID())

	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(p.ID()))
	suite.Equal("Keyboard", stored.Name())
	suite.Equal(int64(4500), stored.Price())
	suite.Equal(10, stored.Stock())
	suite.Equal(p.Version(), stored.Version())
	suite.WithinDuration(p.CreatedAt(), stored.CreatedAt(), time.Millisecond)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", p.ID(), p)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	p := suite.addProduct(1)

	err := suite.repository.Add(context.Background(), p)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NotFound() {
	id := kernel.NewUUID()

	_, err := suite.repository.Get(context.Background(), id)

	var target *product.NotFoundError
	suite.Require().ErrorAs(err, &target)
	suite.True(target.ProductID.IsEqual(id))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	p := suite.addProduct(10)

	tx := suite.db.Begin()
	repo := productrepo.NewGormProductRepository(tx, suite.tracker)
	locked, err := repo.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Reserve(4))
	suite.Require().NoError(repo.Update(ctx, locked))
	suite.Require().NoError(tx.Commit().Error)

	stored, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(6, stored.Stock())
	suite.Equal(p.Version()+1, stored.Version())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()
	p := suite.addProduct(10)

	first, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Reserve(1))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Reserve(1))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	stored, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(9, stored.Stock())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	p, err := product.NewProduct(kernel.NewUUID(), "Ghost", 1, 1)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), p)

	suite.Require().ErrorIs(err, product.ErrProductNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestStockAbove32Bits() {
	ctx := context.Background()
	const large = 1<<31 + 5
	p := suite.addProduct(large)

	tx := suite.db.Begin()
	repo := productrepo.NewGormProductRepository(tx, suite.tracker)
	locked, err := repo.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Release(10))
	suite.Require().NoError(repo.Update(ctx, locked))
	suite.Require().NoError(tx.Commit().Error)

	stored, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(large+10, stored.Stock())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestStockCheckConstraint() {
	p := suite.addProduct(1)

	err := suite.db.Exec("UPDATE products SET stock = -1 WHERE id = ?", p.ID().Bytes()).Error

	suite.Require().Error(err)
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
