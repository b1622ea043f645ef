// Package http exposes the fulfillment operations over an Echo HTTP API.
// Business failures (an action the state machine rejects) travel in the
// response body with 200; HTTP error codes are reserved for invalid input,
// missing entities, and infrastructure problems.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler
	syncOrderHandler            commands.SyncOrderWithDeliveryCommandHandler
	syncDeliveryHandler         commands.SyncDeliveryWithOrderCommandHandler
}

// NewServer creates a new HTTP server with the required command handlers.
func NewServer(
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler,
	syncOrderHandler commands.SyncOrderWithDeliveryCommandHandler,
	syncDeliveryHandler commands.SyncDeliveryWithOrderCommandHandler,
) *Server {
	return &Server{
		changeOrderStatusHandler:    changeOrderStatusHandler,
		changeDeliveryStatusHandler: changeDeliveryStatusHandler,
		syncOrderHandler:            syncOrderHandler,
		syncDeliveryHandler:         syncDeliveryHandler,
	}
}

// RegisterRoutes attaches all fulfillment routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders/:id/status", s.ChangeOrderStatus)
	e.POST("/api/v1/deliveries/:id/status", s.ChangeDeliveryStatus)
	e.POST("/api/v1/orders/:id/synchronize", s.SynchronizeOrder)
	e.POST("/api/v1/deliveries/:id/synchronize", s.SynchronizeDelivery)
	e.GET("/health", s.Health)
}

// ChangeStatusRequest carries the action to apply to a state machine.
type ChangeStatusRequest struct {
	Action string `json:"action"`
}

// SynchronizeOrderRequest carries the delivery status to drive an order towards.
type SynchronizeOrderRequest struct {
	DeliveryStatus string `json:"delivery_status"`
}

// SynchronizeDeliveryRequest carries the order status to drive a delivery towards.
type SynchronizeDeliveryRequest struct {
	OrderStatus string `json:"order_status"`
}

// ResultResponse is the uniform response body for all mutating operations.
type ResultResponse struct {
	Success bool   `json:"success"`
	Partial bool   `json:"partial,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the body for HTTP-level failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	action, err := order.ActionFromString(req.Action)
	if err != nil {
		return badRequest(ctx, "unknown action: "+req.Action)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, action)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toResultResponse(result))
}

// ChangeDeliveryStatus handles POST /api/v1/deliveries/:id/status.
func (s *Server) ChangeDeliveryStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	action, err := delivery.ActionFromString(req.Action)
	if err != nil {
		return badRequest(ctx, "unknown action: "+req.Action)
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(id, action)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.changeDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toResultResponse(result))
}

// SynchronizeOrder handles POST /api/v1/orders/:id/synchronize.
func (s *Server) SynchronizeOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req SynchronizeOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	deliveryStatus, err := delivery.StatusFromString(req.DeliveryStatus)
	if err != nil {
		return badRequest(ctx, "unknown delivery status: "+req.DeliveryStatus)
	}

	cmd, err := commands.NewSyncOrderWithDeliveryCommand(id, deliveryStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.syncOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toResultResponse(result))
}

// SynchronizeDelivery handles POST /api/v1/deliveries/:id/synchronize.
func (s *Server) SynchronizeDelivery(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var req SynchronizeDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderStatus, err := order.StatusFromString(req.OrderStatus)
	if err != nil {
		return badRequest(ctx, "unknown order status: "+req.OrderStatus)
	}

	cmd, err := commands.NewSyncDeliveryWithOrderCommand(id, orderStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.syncDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toResultResponse(result))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func toResultResponse(result commands.Result) ResultResponse {
	return ResultResponse{
		Success: result.Success,
		Partial: result.Partial,
		Message: result.Message,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrVersionConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}
