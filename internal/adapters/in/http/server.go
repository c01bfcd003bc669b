// Package http exposes the fulfillment engine's API surface. Handlers parse
// and validate the request, build a command or query, and translate domain
// errors to stable machine-readable codes; all workflow rules live below the
// ports.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	pickByScanHandler  commands.PickByScanCommandHandler
	confirmPackHandler commands.ConfirmPackCommandHandler
	confirmShipHandler commands.ConfirmShipCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	getHistoryHandler queries.GetHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	pickByScanHandler commands.PickByScanCommandHandler,
	confirmPackHandler commands.ConfirmPackCommandHandler,
	confirmShipHandler commands.ConfirmShipCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getHistoryHandler queries.GetHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		pickByScanHandler:  pickByScanHandler,
		confirmPackHandler: confirmPackHandler,
		confirmShipHandler: confirmShipHandler,
		getOrderHandler:    getOrderHandler,
		getHistoryHandler:  getHistoryHandler,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/scan", s.ScanPick)
	api.POST("/orders/:orderId/items/:itemId/pack", s.ConfirmPack)
	api.POST("/orders/:orderId/items/:itemId/ship", s.ConfirmShip)
	api.GET("/orders/:orderId/history", s.GetHistory)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders - registers a new order from the
// intake collaborator.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operator, err := req.Operator.toDomain()
	if err != nil {
		return badRequest(ctx, "Invalid operator: "+err.Error())
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.CreateOrderItem{
			SKU:            item.SKU,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			IsFragile:      item.IsFragile,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.CustomerRef,
		req.ShippingAddress,
		req.SupplierRef,
		req.SpecialInstructions,
		operator,
		items,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromAggregate(aggregate))
}

// GetOrder handles GET /api/v1/orders/:orderId - returns the order snapshot.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(snapshot))
}

// ScanPick handles POST /api/v1/orders/:orderId/scan - a barcode scan on the
// picking floor.
func (s *Server) ScanPick(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ScanPickRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operator, err := req.Operator.toDomain()
	if err != nil {
		return badRequest(ctx, "Invalid operator: "+err.Error())
	}

	cmd, err := commands.NewPickByScanCommand(orderID, req.SKU, operator)
	if err != nil {
		return badRequest(ctx, "Invalid scan data: "+err.Error())
	}

	aggregate, err := s.pickByScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(aggregate))
}

// ConfirmPack handles POST /api/v1/orders/:orderId/items/:itemId/pack.
func (s *Server) ConfirmPack(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	itemID, err := parseUUIDParam(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req ConfirmPackRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operator, err := req.Operator.toDomain()
	if err != nil {
		return badRequest(ctx, "Invalid operator: "+err.Error())
	}

	cmd, err := commands.NewConfirmPackCommand(orderID, itemID, req.MaterialID, operator)
	if err != nil {
		return badRequest(ctx, "Invalid pack data: "+err.Error())
	}

	aggregate, err := s.confirmPackHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(aggregate))
}

// ConfirmShip handles POST /api/v1/orders/:orderId/items/:itemId/ship.
func (s *Server) ConfirmShip(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	itemID, err := parseUUIDParam(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req ConfirmShipRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operator, err := req.Operator.toDomain()
	if err != nil {
		return badRequest(ctx, "Invalid operator: "+err.Error())
	}

	cmd, err := commands.NewConfirmShipCommand(orderID, itemID, req.Carrier, req.TrackingNumber, operator)
	if err != nil {
		return badRequest(ctx, "Invalid ship data: "+err.Error())
	}

	aggregate, err := s.confirmShipHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(aggregate))
}

// GetHistory handles GET /api/v1/orders/:orderId/history - returns the audit
// trail oldest-first. The optional limit query parameter caps the number of
// entries counted from the start of the history.
func (s *Server) GetHistory(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	limit, err := parseLimitParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetHistoryQuery(orderID, limit)
	if err != nil {
		return badRequest(ctx, "Invalid history query")
	}

	entries, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyResponseFromQuery(entries))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "invalid_request",
		Message: message,
	})
}

// domainError maps the error taxonomy to HTTP statuses with stable codes, so
// scanner UIs can branch on code instead of parsing messages.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: err.Error()})
	case errors.Is(err, errs.ErrWrongProduct):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Code: "wrong_product", Message: err.Error()})
	case errors.Is(err, errs.ErrStockShortage):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Code: "stock_shortage", Message: err.Error()})
	case errors.Is(err, errs.ErrIllegalTransition):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Code: "illegal_transition", Message: err.Error()})
	case errors.Is(err, errs.ErrQuantityExceeded):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Code: "quantity_exceeded", Message: err.Error()})
	case errors.Is(err, errs.ErrOracleUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Code: "oracle_unavailable", Message: err.Error()})
	case errors.Is(err, order.ErrOrderIsCompleted):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Code: "order_completed", Message: err.Error()})
	case errors.Is(err, order.ErrDuplicateSKU),
		errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_request", Message: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "internal_error",
			Message: "Internal server error",
		})
	}
}

func parseUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func parseLimitParam(ctx echo.Context) (int, error) {
	raw := ctx.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}

	var limit int
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return 0, err
	}
	return limit, nil
}

func (o OperatorPayload) toDomain() (audit.Operator, error) {
	id, err := kernel.UUIDFromString(o.ID)
	if err != nil {
		return audit.Operator{}, err
	}
	return audit.NewOperator(id, o.Name, o.Role)
}
