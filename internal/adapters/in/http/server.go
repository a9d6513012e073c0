// Package http exposes the fulfillment API over echo. Handlers translate
// JSON requests into commands and queries, and domain errors into status
// codes: validation failures are 400, unknown entities 404, impossible
// transitions 422, and lost races, repeats and terminal-state writes 409
// with a machine-readable code distinguishing them.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler     commands.PlaceOrderCommandHandler
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler
	acceptOrderHandler    commands.AcceptOrderCommandHandler
	rejectOrderHandler    commands.RejectOrderCommandHandler
	startItemHandler      commands.StartOrderItemCommandHandler
	completeItemHandler   commands.CompleteOrderItemCommandHandler
	completeOrderHandler  commands.CompleteOrderCommandHandler
	markDeliveredHandler  commands.MarkDeliveredCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	assignRiderHandler    commands.AssignRiderCommandHandler

	getOrderHandler          queries.GetOrderQueryHandler
	trackOrdersHandler       queries.TrackOrdersQueryHandler
	listOrdersHandler        queries.ListOrdersByStatusQueryHandler
	listActiveTicketsHandler queries.ListActiveTicketsQueryHandler

	// zones is the delivery zone configuration, keyed by zone name.
	zones map[string]zone.DeliveryZone
}

// NewServer creates an HTTP server with the required handlers and the
// delivery zone configuration.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	startItemHandler commands.StartOrderItemCommandHandler,
	completeItemHandler commands.CompleteOrderItemCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	trackOrdersHandler queries.TrackOrdersQueryHandler,
	listOrdersHandler queries.ListOrdersByStatusQueryHandler,
	listActiveTicketsHandler queries.ListActiveTicketsQueryHandler,
	zones map[string]zone.DeliveryZone,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		confirmPaymentHandler:    confirmPaymentHandler,
		acceptOrderHandler:       acceptOrderHandler,
		rejectOrderHandler:       rejectOrderHandler,
		startItemHandler:         startItemHandler,
		completeItemHandler:      completeItemHandler,
		completeOrderHandler:     completeOrderHandler,
		markDeliveredHandler:     markDeliveredHandler,
		cancelOrderHandler:       cancelOrderHandler,
		assignRiderHandler:       assignRiderHandler,
		getOrderHandler:          getOrderHandler,
		trackOrdersHandler:       trackOrdersHandler,
		listOrdersHandler:        listOrdersHandler,
		listActiveTicketsHandler: listActiveTicketsHandler,
		zones:                    zones,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrdersByStatus)
	api.GET("/orders/track", s.TrackOrders)
	api.GET("/orders/:id", s.GetOrder)

	api.POST("/orders/:id/payment-confirmation", s.ConfirmPayment)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/deliver", s.MarkDelivered)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/rider", s.AssignRider)

	api.POST("/orders/:id/items/:itemID/start", s.StartOrderItem)
	api.POST("/orders/:id/items/:itemID/ready", s.CompleteOrderItem)

	api.GET("/kitchen/tickets", s.ListActiveTickets)
}

// ErrorResponse is the JSON error body. Code is machine-readable so clients
// can tell a lost race from a duplicate submission without parsing messages.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorJSON maps a domain error onto an HTTP status and error code.
func errorJSON(ctx echo.Context, err error) error {
	status, code := classifyError(err)
	return ctx.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusUnprocessableEntity, "illegal_transition"
	case errors.Is(err, errs.ErrStaleState):
		return http.StatusConflict, "stale_state"
	case errors.Is(err, errs.ErrTerminalState):
		return http.StatusConflict, "terminal_state"
	case errors.Is(err, errs.ErrDuplicateAction):
		return http.StatusConflict, "duplicate_action"
	case errors.Is(err, errs.ErrDeliveryUnavailable):
		return http.StatusConflict, "delivery_unavailable"
	case errors.Is(err, errs.ErrBelowMinimumOrder):
		return http.StatusConflict, "below_minimum_order"
	case errors.Is(err, errs.ErrFeeMisconfigured):
		return http.StatusConflict, "fee_misconfigured"
	default:
		return http.StatusBadRequest, "invalid_request"
	}
}

// PlaceOrderItem is one cart line of a checkout request.
type PlaceOrderItem struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	UnitPrice  int64    `json:"unit_price"`
	Quantity   int      `json:"quantity"`
	Options    []string `json:"options,omitempty"`
}

// PlaceOrderRequest is the checkout request body.
type PlaceOrderRequest struct {
	CustomerID    string           `json:"customer_id,omitempty"`
	CustomerName  string           `json:"customer_name"`
	Phone         string           `json:"phone"`
	Address       string           `json:"address"`
	Instructions  string           `json:"instructions,omitempty"`
	Items         []PlaceOrderItem `json:"items"`
	Discount      int64            `json:"discount"`
	WalletUsed    int64            `json:"wallet_used"`
	PaymentMethod string           `json:"payment_method"`
	DeliveryZone  string           `json:"delivery_zone"`
	DistanceKm    float64          `json:"distance_km"`
}

// PlaceOrderResponse returns the identifier of the created order.
type PlaceOrderResponse struct {
	OrderID string `json:"order_id"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "invalid_request",
			Message: "invalid request body",
		})
	}

	deliveryZone, ok := s.zones[req.DeliveryZone]
	if !ok {
		return errorJSON(ctx, errs.NewObjectNotFoundError("delivery zone", req.DeliveryZone))
	}

	var customerID *kernel.UUID
	if req.CustomerID != "" {
		id, err := kernel.UUIDFromString(req.CustomerID)
		if err != nil {
			return errorJSON(ctx, err)
		}
		customerID = &id
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		menuItemID, err := kernel.UUIDFromString(line.MenuItemID)
		if err != nil {
			return errorJSON(ctx, err)
		}
		unitPrice, err := kernel.NewMoney(line.UnitPrice)
		if err != nil {
			return errorJSON(ctx, err)
		}
		item, err := order.NewItem(menuItemID, line.Name, unitPrice, line.Quantity, line.Options)
		if err != nil {
			return errorJSON(ctx, err)
		}
		items = append(items, item)
	}

	payment, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return errorJSON(ctx, err)
	}
	discount, err := kernel.NewMoney(req.Discount)
	if err != nil {
		return errorJSON(ctx, err)
	}
	walletUsed, err := kernel.NewMoney(req.WalletUsed)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID, customerID,
		req.CustomerName, req.Phone, req.Address, req.Instructions,
		items, discount, walletUsed, payment,
		deliveryZone, req.DistanceKm,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: orderID.String()})
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment-confirmation.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrderRequest is the rejection request body. A reason is mandatory.
type RejectOrderRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note,omitempty"`
}

// RejectOrder handles POST /api/v1/orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req RejectOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "invalid_request",
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, req.Reason, req.Note)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartOrderItem handles POST /api/v1/orders/:id/items/:itemID/start.
func (s *Server) StartOrderItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}
	menuItemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewStartOrderItemCommand(orderID, menuItemID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.startItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrderItem handles POST /api/v1/orders/:id/items/:itemID/ready.
func (s *Server) CompleteOrderItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}
	menuItemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderItemCommand(orderID, menuItemID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.completeItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/orders/:id/deliver.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrderRequest carries who is cancelling. Customers may only cancel
// orders that are still awaiting payment; staff may cancel any active order.
type CancelOrderRequest struct {
	Actor string `json:"actor"`
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "invalid_request",
			Message: "invalid request body",
		})
	}

	var actor commands.CancelActor
	switch req.Actor {
	case "customer":
		actor = commands.CancelActorCustomer
	case "admin":
		actor = commands.CancelActorAdmin
	default:
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "invalid_request",
			Message: "actor must be customer or admin",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignRiderRequest carries the rider to assign.
type AssignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

// AssignRider handles POST /api/v1/orders/:id/rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req AssignRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "invalid_request",
			Message: "invalid request body",
		})
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, riderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetail(result))
}

// TrackOrders handles GET /api/v1/orders/track?phone= or ?customer_id=.
func (s *Server) TrackOrders(ctx echo.Context) error {
	var (
		query queries.TrackOrdersQuery
		err   error
	)

	if customerID := ctx.QueryParam("customer_id"); customerID != "" {
		id, idErr := kernel.UUIDFromString(customerID)
		if idErr != nil {
			return errorJSON(ctx, idErr)
		}
		query, err = queries.NewTrackOrdersQueryByCustomer(id)
	} else {
		query, err = queries.NewTrackOrdersQueryByPhone(ctx.QueryParam("phone"))
	}
	if err != nil {
		return errorJSON(ctx, err)
	}

	results, err := s.trackOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]OrderSummary, len(results))
	for i, row := range results {
		response[i] = OrderSummary{
			ID:          row.ID.String(),
			ShortCode:   row.ShortCode,
			Status:      row.Status,
			FinalAmount: row.FinalAmount.Amount(),
			PlacedAt:    row.PlacedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListOrdersByStatus handles GET /api/v1/orders?status=.
func (s *Server) ListOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewListOrdersByStatusQuery(status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	results, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]AdminOrderRow, len(results))
	for i, row := range results {
		response[i] = AdminOrderRow{
			ID:           row.ID.String(),
			ShortCode:    row.ShortCode,
			CustomerName: row.CustomerName,
			Phone:        row.Phone,
			Status:       row.Status,
			FinalAmount:  row.FinalAmount.Amount(),
			PlacedAt:     row.PlacedAt,
			Version:      row.Version,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListActiveTickets handles GET /api/v1/kitchen/tickets.
func (s *Server) ListActiveTickets(ctx echo.Context) error {
	query := queries.NewListActiveTicketsQuery()

	results, err := s.listActiveTicketsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]KitchenTicketRow, len(results))
	for i, row := range results {
		items := make([]KitchenTicketItem, len(row.Items))
		for j, item := range row.Items {
			items[j] = KitchenTicketItem{
				MenuItemID: item.MenuItemID.String(),
				Name:       item.Name,
				Quantity:   item.Quantity,
				Status:     item.Status,
			}
		}
		response[i] = KitchenTicketRow{
			OrderID:      row.OrderID.String(),
			ShortCode:    row.ShortCode,
			CustomerName: row.CustomerName,
			Instructions: row.Instructions,
			Status:       row.Status,
			Items:        items,
			PlacedAt:     row.PlacedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
