// Package http exposes the ordering core over REST and websocket. It only
// translates: principal headers into access.Principal, JSON into commands and
// queries, and the error taxonomy into status codes.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/websocket"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	BulkUpdateAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.BulkUpdateAvailabilityCommand) (int, error)
	}
	SetIngredientExpiredHandler interface {
		Handle(ctx context.Context, cmd commands.SetIngredientExpiredCommand) error
	}
	SetDishAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.SetDishAvailabilityCommand) (*menu.Dish, error)
	}
	GetBranchOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetBranchOrdersQuery) ([]queries.GetBranchOrdersQueryResponse, error)
	}
	GetBranchMenuHandler interface {
		Handle(ctx context.Context, query queries.GetBranchMenuQuery) (queries.GetBranchMenuQueryResponse, error)
	}
	GetIngredientAvailabilityHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetIngredientAvailabilityQuery,
		) (queries.GetIngredientAvailabilityQueryResponse, error)
	}
	GetDishAvailabilityHandler interface {
		Handle(ctx context.Context, query queries.GetDishAvailabilityQuery) (queries.GetDishAvailabilityQueryResponse, error)
	}

	// SubscriberHub serves an authorized websocket subscriber of one branch topic.
	SubscriberHub interface {
		Handler(topic string) websocket.Handler
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder               CreateOrderHandler
	UpdateOrderStatus         UpdateOrderStatusHandler
	CancelOrder               CancelOrderHandler
	BulkUpdateAvailability    BulkUpdateAvailabilityHandler
	SetIngredientExpired      SetIngredientExpiredHandler
	SetDishAvailability       SetDishAvailabilityHandler
	GetBranchOrders           GetBranchOrdersHandler
	GetBranchMenu             GetBranchMenuHandler
	GetIngredientAvailability GetIngredientAvailabilityHandler
	GetDishAvailability       GetDishAvailabilityHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	hub      SubscriberHub
	guard    services.AccessGuard
	logger   *slog.Logger
}

func NewServer(handlers Handlers, hub SubscriberHub, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		hub:      hub,
		guard:    services.NewAccessGuard(),
		logger:   logger.With("component", "http_server"),
	}
}

// NewEcho builds the echo instance with every route registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	withPrincipal := PrincipalMiddleware(s.logger)
	e.GET("/ws", s.Subscribe, withPrincipal)

	api := e.Group("/api/v1", withPrincipal)
	api.POST("/branches/:branchID/orders", s.CreateOrder)
	api.GET("/branches/:branchID/orders", s.GetBranchOrders)
	api.PATCH("/orders/:orderID/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.PUT("/branches/:branchID/availability", s.BulkUpdateAvailability)
	api.GET("/branches/:branchID/menu", s.GetBranchMenu)
	api.GET("/branches/:branchID/ingredients/:ingredientID/availability", s.GetIngredientAvailability)
	api.GET("/branches/:branchID/dishes/:dishID/availability", s.GetDishAvailability)
	api.PUT("/ingredients/:ingredientID/expired", s.SetIngredientExpired)
	api.PUT("/dishes/:dishID/available", s.SetDishAvailability)
}

func (s *Server) fail(c echo.Context, err error) error {
	return respondError(c, s.logger, err)
}

func (s *Server) bind(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// CreateOrder handles POST /api/v1/branches/:branchID/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	branchID, err := pathUUID(c, "branchID")
	if err != nil {
		return s.fail(c, err)
	}

	var req CreateOrderRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	items := make([]commands.OrderItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		dishID, parseErr := kernel.UUIDFromString(it.DishID)
		if parseErr != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("dishId", parseErr))
		}
		items = append(items, commands.OrderItemRequest{DishID: dishID, Qty: it.Qty})
	}

	cmd, err := commands.NewCreateOrderCommand(branchID, req.CustomerName, req.CustomerPhone, items, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponse(o))
}

// GetBranchOrders handles GET /api/v1/branches/:branchID/orders.
//
// Query parameters: status (repeatable or comma separated), canceled,
// from and to (RFC 3339), limit, offset.
func (s *Server) GetBranchOrders(c echo.Context) error {
	branchID, err := pathUUID(c, "branchID")
	if err != nil {
		return s.fail(c, err)
	}

	filter, err := parseOrderFilter(c)
	if err != nil {
		return s.fail(c, err)
	}
	filter.BranchID = branchID

	query, err := queries.NewGetBranchOrdersQuery(filter, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.handlers.GetBranchOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderListResponse(orders))
}

func parseOrderFilter(c echo.Context) (queries.OrderFilter, error) {
	var filter queries.OrderFilter
	params := c.QueryParams()

	for _, raw := range params["status"] {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, err := order.ParseStatus(part)
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	if raw := c.QueryParam("canceled"); raw != "" {
		canceled, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errs.NewValueIsInvalidErrorWithCause("canceled", err)
		}
		filter.Canceled = &canceled
	}

	var err error
	if filter.CreatedFrom, err = parseTimeParam(c, "from"); err != nil {
		return filter, err
	}
	if filter.CreatedTo, err = parseTimeParam(c, "to"); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseIntParam(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseIntParam(c, "offset"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseTimeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &t, nil
}

func parseIntParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderID/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateOrderStatusRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, req.Reason, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(o))
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return s.fail(c, err)
	}

	var req CancelOrderRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(o))
}

// BulkUpdateAvailability handles PUT /api/v1/branches/:branchID/availability.
func (s *Server) BulkUpdateAvailability(c echo.Context) error {
	branchID, err := pathUUID(c, "branchID")
	if err != nil {
		return s.fail(c, err)
	}

	var req BulkUpdateAvailabilityRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	updates := make([]commands.AvailabilityUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		ingredientID, parseErr := kernel.UUIDFromString(u.IngredientID)
		if parseErr != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("ingredientId", parseErr))
		}
		updates = append(updates, commands.AvailabilityUpdate{IngredientID: ingredientID, Available: u.Available})
	}

	cmd, err := commands.NewBulkUpdateAvailabilityCommand(branchID, updates, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	n, err := s.handlers.BulkUpdateAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, BulkUpdateAvailabilityResponse{Updated: n})
}

// SetIngredientExpired handles PUT /api/v1/ingredients/:ingredientID/expired.
func (s *Server) SetIngredientExpired(c echo.Context) error {
	ingredientID, err := pathUUID(c, "ingredientID")
	if err != nil {
		return s.fail(c, err)
	}

	var req SetIngredientExpiredRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	var branchID *kernel.UUID
	if req.BranchID != nil {
		id, parseErr := kernel.UUIDFromString(*req.BranchID)
		if parseErr != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("branchId", parseErr))
		}
		branchID = &id
	}

	cmd, err := commands.NewSetIngredientExpiredCommand(ingredientID, branchID, req.Expired, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.SetIngredientExpired.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetDishAvailability handles PUT /api/v1/dishes/:dishID/available.
func (s *Server) SetDishAvailability(c echo.Context) error {
	dishID, err := pathUUID(c, "dishID")
	if err != nil {
		return s.fail(c, err)
	}

	var req SetDishAvailableRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetDishAvailabilityCommand(dishID, req.Available, principalFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	d, err := s.handlers.SetDishAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, dishResponse(d))
}

// GetBranchMenu handles GET /api/v1/branches/:branchID/menu.
func (s *Server) GetBranchMenu(c echo.Context) error {
	branchID, err := pathUUID(c, "branchID")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetBranchMenuQuery(branchID)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.handlers.GetBranchMenu.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, menuResponse(res))
}

// GetIngredientAvailability handles
// GET /api/v1/branches/:branchID/ingredients/:ingredientID/availability.
func (s *Server) GetIngredientAvailability(c echo.Context) error {
	branchID, err := pathUUID(c, "branchID")
	if err != nil {
		return s.fail(c, err)
	}
	ingredientID, err := pathUUID(c, "ingredientID")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetIngredientAvailabilityQuery(ingredientID, branchID)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.handlers.GetIngredientAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, IngredientAvailabilityResponse{
		IngredientID:  res.IngredientID.String(),
		BranchID:      res.BranchID.String(),
		Name:          res.Name,
		Available:     res.Available,
		Override:      res.Override,
		Expired:       res.Expired,
		BranchExpired: res.BranchExpired,
	})
}

// GetDishAvailability handles GET /api/v1/branches/:branchID/dishes/:dishID/availability.
func (s *Server) GetDishAvailability(c echo.Context) error {
	branchID, err := pathUUID(c, "branchID")
	if err != nil {
		return s.fail(c, err)
	}
	dishID, err := pathUUID(c, "dishID")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetDishAvailabilityQuery(dishID, branchID)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.handlers.GetDishAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, DishAvailabilityResponse{
		DishID:    res.DishID.String(),
		BranchID:  res.BranchID.String(),
		Name:      res.Name,
		Available: res.Available,
	})
}

// Subscribe handles GET /ws?branch_id=. The caller joins the branch topic
// once the guard allows SubscribeBranch; the connection then only receives.
func (s *Server) Subscribe(c echo.Context) error {
	branchID, err := kernel.UUIDFromString(c.QueryParam("branch_id"))
	if err != nil {
		return s.fail(c, errs.NewValueIsRequiredErrorWithCause("branch_id", err))
	}

	if err = s.guard.Authorize(principalFrom(c), &branchID, access.SubscribeBranch); err != nil {
		return s.fail(c, err)
	}

	s.hub.Handler(event.Topic(branchID)).ServeHTTP(c.Response(), c.Request())
	return nil
}
