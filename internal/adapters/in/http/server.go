// Package http exposes the shop over a JSON REST API built on echo.
package http

import (
	"context"
	"net/http"
	"strconv"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Handler contracts of the use cases the server calls.
type (
	CreateProductHandler interface {
		Handle(ctx context.Context, cmd commands.CreateProductCommand) (*product.Product, error)
	}
	ChangeProductPriceHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeProductPriceCommand) (*product.Product, error)
	}
	GetProductHandler interface {
		Handle(ctx context.Context, query queries.GetProductQuery) (queries.GetProductQueryResponse, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	AdvanceOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	ListBuyerOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListBuyerOrdersQuery) ([]queries.OrderSummaryResponse, error)
	}
)

// Handlers groups the use cases behind the routes.
type Handlers struct {
	CreateProduct      CreateProductHandler
	ChangeProductPrice ChangeProductPriceHandler
	GetProduct         GetProductHandler
	CreateOrder        CreateOrderHandler
	CancelOrder        CancelOrderHandler
	AdvanceOrderStatus AdvanceOrderStatusHandler
	GetOrder           GetOrderHandler
	ListBuyerOrders    ListBuyerOrdersHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *log.Entry
}

func NewServer(handlers Handlers, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &Server{handlers: handlers, logger: logger}
}

// RegisterHandlers mounts the API under /api/v1.
func (s *Server) RegisterHandlers(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProduct)
	api.PUT("/products/:id/price", s.ChangeProductPrice)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/status", s.AdvanceOrderStatus)
	api.GET("/buyers/:id/orders", s.ListBuyerOrders)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body NewProduct
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), body.Name, body.Price, body.Stock)
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	p, err := s.handlers.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err, "Failed to create product")
	}

	return ctx.JSON(http.StatusCreated, productFromDomain(p))
}

// GetProduct handles GET /api/v1/products/:id.
func (s *Server) GetProduct(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	p, err := s.handlers.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err, "Failed to retrieve product")
	}

	return ctx.JSON(http.StatusOK, productFromQuery(p))
}

// ChangeProductPrice handles PUT /api/v1/products/:id/price.
func (s *Server) ChangeProductPrice(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	var body PriceChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeProductPriceCommand(id, body.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price: "+err.Error())
	}

	p, err := s.handlers.ChangeProductPrice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err, "Failed to change price")
	}

	return ctx.JSON(http.StatusOK, productFromDomain(p))
}

// CreateOrder handles POST /api/v1/orders. The order id is assigned here.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(body.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer id")
	}

	items := make([]commands.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid product id: "+item.ProductID)
		}
		items = append(items, commands.OrderItem{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), buyerID, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(o))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(id, order.CancelRequested)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err, "Failed to cancel order")
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// AdvanceOrderStatus handles POST /api/v1/orders/:id/status. Cancellation has
// its own route; asking for CANCELLED here is an invalid transition.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(id, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err, "Failed to change order status")
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// ListBuyerOrders handles GET /api/v1/buyers/:id/orders?limit=N.
func (s *Server) ListBuyerOrders(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid buyer id")
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return badRequest(ctx, "Invalid limit")
		}
	}

	query, err := queries.NewListBuyerOrdersQuery(buyerID, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	list, err := s.handlers.ListBuyerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, summariesFromQuery(list))
}
