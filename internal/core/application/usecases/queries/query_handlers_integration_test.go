package queries_test

import (
	"context"
	"testing"
	"time"

	"shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type QueryHandlersTestSuite struct {
	suite.Suite
	container   *tcpostgres.PostgresContainer
	db          *gorm.DB
	productRepo *productrepo.GormProductRepository
	orderRepo   *orderrepo.GormOrderRepository
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))

	suite.productRepo = productrepo.NewGormProductRepository(db, nopTracker{})
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, nopTracker{})
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products, orders, order_line_items CASCADE").Error)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_WithItemsAndNames() {
	ctx := context.Background()
	keyboard := suite.addProduct("Keyboard", 4500)
	mouse := suite.addProduct("Mouse", 1500)
	o := suite.addOrder(kernel.NewUUID(), time.Now().UTC(), keyboard, mouse)

	// Prices captured on the order survive later catalog changes.
	suite.Require().NoError(keyboard.ChangePrice(9999))
	suite.Require().NoError(suite.productRepo.Update(ctx, keyboard))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	result, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(o.ID()))
	suite.True(result.BuyerID.IsEqual(o.BuyerID()))
	suite.Equal(order.Pending, result.Status)
	suite.Equal(int64(4500+2*1500), result.TotalAmount)
	suite.Require().Len(result.Items, 2)
	suite.Equal("Keyboard", result.Items[0].ProductName)
	suite.Equal(int64(4500), result.Items[0].UnitPrice)
	suite.Equal("Mouse", result.Items[1].ProductName)
	suite.Equal(2, result.Items[1].Quantity)
	suite.Equal(int64(3000), result.Items[1].Subtotal)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_ProductRemovedFromCatalog() {
	ctx := context.Background()
	keyboard := suite.addProduct("Keyboard", 4500)
	o := suite.addOrder(kernel.NewUUID(), time.Now().UTC(), keyboard)
	suite.Require().NoError(suite.db.Exec("DELETE FROM products WHERE id = ?", keyboard.ID().Bytes()).Error)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	result, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 1)
	suite.Empty(result.Items[0].ProductName)
	suite.Equal(int64(4500), result.Items[0].UnitPrice)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, order.ErrOrderNotFound)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestListBuyerOrders_NewestFirst() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()
	p := suite.addProduct("Cable", 300)
	now := time.Now().UTC()
	older := suite.addOrder(buyerID, now.Add(-time.Hour), p)
	newer := suite.addOrder(buyerID, now, p, p)
	suite.addOrder(kernel.NewUUID(), now, p)

	query, err := queries.NewListBuyerOrdersQuery(buyerID, 0)
	suite.Require().NoError(err)
	result, err := queries.NewListBuyerOrdersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.Equal(2, result[0].ItemCount)
	suite.True(result[1].ID.IsEqual(older.ID()))
	suite.Equal(1, result[1].ItemCount)

	limited, err := queries.NewListBuyerOrdersQuery(buyerID, 1)
	suite.Require().NoError(err)
	result, err = queries.NewListBuyerOrdersQueryHandler(suite.db).Handle(ctx, limited)
	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *QueryHandlersTestSuite) TestListBuyerOrders_Empty() {
	query, err := queries.NewListBuyerOrdersQuery(kernel.NewUUID(), 10)
	suite.Require().NoError(err)

	result, err := queries.NewListBuyerOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersTestSuite) TestGetProduct() {
	ctx := context.Background()
	p := suite.addProduct("Monitor", 25000)

	query, err := queries.NewGetProductQuery(p.ID())
	suite.Require().NoError(err)
	result, err := queries.NewGetProductQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("Monitor", result.Name)
	suite.Equal(int64(25000), result.Price)
	suite.Equal(10, result.Stock)

	missing, err := queries.NewGetProductQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetProductQueryHandler(suite.db).Handle(ctx, missing)
	suite.Require().ErrorIs(err, product.ErrProductNotFound)
}

// Helper methods

func (suite *QueryHandlersTestSuite) addProduct(name string, price int64) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), name, price, 10)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.productRepo.Add(context.Background(), p))

	stored, err := suite.productRepo.Get(context.Background(), p.ID())
	suite.Require().NoError(err)
	return stored
}

// addOrder stores an order with one line per product; the i-th line has quantity i+1.
func (suite *QueryHandlersTestSuite) addOrder(buyerID kernel.UUID, createdAt time.Time, products ...*product.Product) *order.Order {
	items := make([]*order.LineItem, 0, len(products))
	var total int64
	for i, p := range products {
		item, err := order.NewLineItem(kernel.NewUUID(), p.ID(), i+1, p.Price())
		suite.Require().NoError(err)
		items = append(items, item)
		total += item.Subtotal()
	}

	o, err := order.RestoreOrder(kernel.NewUUID(), buyerID, items, total, order.Pending, createdAt, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
