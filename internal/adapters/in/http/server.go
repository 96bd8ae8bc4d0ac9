package http

import (
	"context"
	"net/http"

	"orderledger/internal/core/application/usecases/commands"
	"orderledger/internal/core/application/usecases/queries"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Handler contracts the server depends on. The command and query handlers satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	CreatePaymentOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePaymentOrderCommand) (commands.CreatePaymentOrderResult, error)
	}
	VerifyPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.VerifyPaymentCommand) (*order.Order, error)
	}
	MarkPaidFromCallbackHandler interface {
		Handle(ctx context.Context, cmd commands.MarkPaidFromCallbackCommand) (*order.Order, error)
	}
	MarkDeliveredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) (*order.Order, error)
	}
	AssignParcelHandler interface {
		Handle(ctx context.Context, cmd commands.AssignParcelCommand) (*order.Order, error)
	}
	UpdateShippingAddressHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateShippingAddressCommand) (commands.UpdateShippingAddressResult, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error)
	}
	GetSalesSummaryHandler interface {
		Handle(ctx context.Context, query queries.GetSalesSummaryQuery) (queries.GetSalesSummaryQueryResponse, error)
	}
	GetSalesByDateHandler interface {
		Handle(ctx context.Context, query queries.GetSalesByDateQuery) ([]queries.GetSalesByDateQueryResponse, error)
	}
	ListOpenIncidentsHandler interface {
		Handle(ctx context.Context, query queries.ListOpenIncidentsQuery) ([]queries.ListOpenIncidentsQueryResponse, error)
	}
)

// CommandHandlers groups the write side.
type CommandHandlers struct {
	CreateOrder           CreateOrderHandler
	CreatePaymentOrder    CreatePaymentOrderHandler
	VerifyPayment         VerifyPaymentHandler
	MarkPaidFromCallback  MarkPaidFromCallbackHandler
	MarkDelivered         MarkDeliveredHandler
	AssignParcel          AssignParcelHandler
	UpdateShippingAddress UpdateShippingAddressHandler
}

// QueryHandlers groups the read side.
type QueryHandlers struct {
	GetOrder          GetOrderHandler
	ListOrders        ListOrdersHandler
	GetSalesSummary   GetSalesSummaryHandler
	GetSalesByDate    GetSalesByDateHandler
	ListOpenIncidents ListOpenIncidentsHandler
}

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := decodeStrict(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	address, err := addressFromRequest(body.ShippingAddress)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.CreateOrderItem, 0, len(body.OrderItems))
	for _, item := range body.OrderItems {
		productID, idErr := kernel.UUIDFromBytes(item.Product[:])
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Qty:       item.Qty,
			Name:      deref(item.Name),
			Image:     deref(item.Image),
		})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), items, address, body.PaymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(created))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListOrdersQuery())
}

// ListOrdersAwaitingDispatch handles GET /api/v1/orders/awaiting-dispatch.
func (s *Server) ListOrdersAwaitingDispatch(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListOrdersAwaitingDispatchQuery())
}

func (s *Server) listOrders(ctx echo.Context, query queries.ListOrdersQuery) error {
	orders, err := s.queries.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSalesSummary handles GET /api/v1/orders/summary.
func (s *Server) GetSalesSummary(ctx echo.Context) error {
	summary, err := s.queries.GetSalesSummary.Handle(ctx.Request().Context(), queries.NewGetSalesSummaryQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.SalesSummary{
		TotalOrders: summary.TotalOrders,
		TotalSales:  summary.TotalSales.StringFixed(2),
	})
}

// GetSalesByDate handles GET /api/v1/orders/sales-by-date.
func (s *Server) GetSalesByDate(ctx echo.Context) error {
	days, err := s.queries.GetSalesByDate.Handle(ctx.Request().Context(), queries.NewGetSalesByDateQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.SalesByDate, len(days))
	for i, day := range days {
		response[i] = servers.SalesByDate{
			Date:       day.Date,
			TotalSales: day.TotalSales.StringFixed(2),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	found, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelJSON, err := parcelResponse(found.Parcel)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderDetails{
		Order:  orderResponse(found.Order),
		Parcel: parcelJSON,
	})
}

// CreatePaymentOrder handles POST /api/v1/orders/{id}/create-payment-order.
func (s *Server) CreatePaymentOrder(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreatePaymentOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.commands.CreatePaymentOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.PaymentOrder{
		Id:       result.GatewayOrderID,
		Amount:   result.AmountMinor,
		Currency: result.Currency,
		OrderId:  result.OrderID,
	})
}

// VerifyPayment handles POST /api/v1/orders/{id}/verify-payment.
func (s *Server) VerifyPayment(ctx echo.Context, id servers.OrderID) error {
	var body servers.VerifyPaymentJSONRequestBody
	if err := decodeStrict(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewVerifyPaymentCommand(
		orderID, body.RazorpayOrderId, body.RazorpayPaymentId, body.RazorpaySignature)
	if err != nil {
		return writeError(ctx, err)
	}

	paid, err := s.commands.VerifyPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(paid))
}

// MarkPaid handles PUT /api/v1/orders/{id}/pay.
func (s *Server) MarkPaid(ctx echo.Context, id servers.OrderID) error {
	var body servers.MarkPaidJSONRequestBody
	if err := decodeStrict(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}

	paymentID := deref(body.Id)
	if paymentID == "" {
		paymentID = deref(body.RazorpayPaymentId)
	}
	email := deref(body.Email)
	if body.Payer != nil && deref(body.Payer.EmailAddress) != "" {
		email = *body.Payer.EmailAddress
	}

	cmd, err := commands.NewMarkPaidFromCallbackCommand(
		orderID, paymentID, deref(body.Status), deref(body.UpdateTime), email)
	if err != nil {
		return writeError(ctx, err)
	}

	paid, err := s.commands.MarkPaidFromCallback.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(paid))
}

// MarkDelivered handles PUT /api/v1/orders/{id}/deliver.
func (s *Server) MarkDelivered(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}
	return s.markDelivered(ctx, orderID)
}

// MarkDeliveredByCallback handles PUT /api/v1/orders/deliver, called by the tracking
// service with the order id in the body.
func (s *Server) MarkDeliveredByCallback(ctx echo.Context) error {
	var body servers.MarkDeliveredByCallbackJSONRequestBody
	if err := decodeStrict(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	if body.OrderId == nil {
		return writeError(ctx, errOrderIDMissing)
	}

	orderID, err := kernel.UUIDFromBytes(body.OrderId[:])
	if err != nil {
		return writeError(ctx, err)
	}
	return s.markDelivered(ctx, orderID)
}

func (s *Server) markDelivered(ctx echo.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	delivered, err := s.commands.MarkDelivered.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(delivered))
}

// AssignParcel handles PATCH /api/v1/orders/{id}/parcel.
func (s *Server) AssignParcel(ctx echo.Context, id servers.OrderID) error {
	var body servers.AssignParcelJSONRequestBody
	if err := decodeStrict(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignParcelCommand(orderID, deref(body.ParcelId))
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.commands.AssignParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(updated))
}

// UpdateShippingAddress handles PATCH /api/v1/orders/{id}/address.
func (s *Server) UpdateShippingAddress(ctx echo.Context, id servers.OrderID) error {
	var body servers.UpdateShippingAddressJSONRequestBody
	if err := decodeStrict(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateShippingAddressCommand(orderID, order.AddressPatch{
		Street:     body.Address,
		City:       body.City,
		District:   body.District,
		State:      body.State,
		PostalCode: body.PostalCode,
		Country:    body.Country,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.commands.UpdateShippingAddress.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelJSON, err := parcelResponse(result.Parcel)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.AddressUpdateResult{
		Order:         orderResponse(result.Order),
		ParcelUpdated: result.ParcelUpdated,
		Parcel:        parcelJSON,
	})
}

// ListIncidents handles GET /api/v1/incidents.
func (s *Server) ListIncidents(ctx echo.Context) error {
	incidents, err := s.queries.ListOpenIncidents.Handle(ctx.Request().Context(), queries.NewListOpenIncidentsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Incident, len(incidents))
	for i, inc := range incidents {
		response[i] = servers.Incident{
			Id:              inc.ID.Bytes(),
			OrderId:         inc.OrderID.Bytes(),
			ParcelId:        inc.ParcelID,
			IntendedAddress: inc.IntendedAddress,
			PreviousAddress: inc.PreviousAddress,
			Cause:           inc.Cause,
			CreatedAt:       inc.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
