package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/application/usecases/queries"
	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const idempotencyKeyHeader = "Idempotency-Key"

// CreateOrder handles POST /api/v1/orders. The vendor is the caller.
//
//	@Summary	Place a purchase order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		Idempotency-Key	header		string		false	"Replays return the order created under the key"
//	@Param		order			body		NewOrder	true	"Order"
//	@Success	201				{object}	Order
//	@Failure	400				{object}	Error
//	@Failure	409				{object}	Error
//	@Router		/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	who := actorFrom(c)
	if !who.Is(actor.Vendor) {
		return s.writeError(c, errs.NewForbiddenError(who.ID().String(), "order", "new", "only vendors place orders"))
	}

	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	supplierID, err := kernel.UUIDFromString(body.SupplierID)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("supplierId", err))
	}

	items, problems := orderItems(body.Items)

	cmd, err := commands.NewCreateOrderCommand(who.ID(), supplierID, items, order.Delivery{
		Address: body.DeliveryAddress,
		Date:    body.DeliveryDate,
		Notes:   body.Notes,
	}, strings.TrimSpace(c.Request().Header.Get(idempotencyKeyHeader)))
	if err := errors.Join(append(problems, err)...); err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	s.metrics.OrdersCreated.Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+created.ID().String())
	return c.JSON(http.StatusCreated, orderFromAggregate(created))
}

// ListOrders handles GET /api/v1/orders: the caller's own orders, newest
// first.
func (s *Server) ListOrders(c echo.Context) error {
	var rawStatus *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &rawStatus); err != nil {
		return badRequest(c, err.Error())
	}
	limit, err := limitParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var status *order.Status
	if rawStatus != nil && *rawStatus != "" {
		parsed, err := order.ParseStatus(*rawStatus)
		if err != nil {
			return s.writeError(c, err)
		}
		status = &parsed
	}

	query, err := queries.NewListActorOrdersQuery(actorFrom(c), status, limit)
	if err != nil {
		return s.writeError(c, err)
	}
	orders, err := s.handlers.ListActorOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ordersFromSummaries(orders))
}

// ListClaimableOrders handles GET /api/v1/orders/claimable, oldest first.
func (s *Server) ListClaimableOrders(c echo.Context) error {
	who := actorFrom(c)
	if !who.Is(actor.DeliveryPartner) {
		return s.writeError(c, errs.NewForbiddenError(who.ID().String(), "order", "claimable",
			"only delivery partners see the claimable list"))
	}
	limit, err := limitParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewListClaimableOrdersQuery(limit)
	if err != nil {
		return s.writeError(c, err)
	}
	orders, err := s.handlers.ListClaimable.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ordersFromSummaries(orders))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}
	details, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDetails(details))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
//
//	@Summary	Move an order to another status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		orderId		path		string		true	"Order id"
//	@Param		transition	body		Transition	true	"Target status"
//	@Success	200			{object}	Order
//	@Failure	403			{object}	Error
//	@Failure	409			{object}	Error
//	@Router		/orders/{orderId}/transitions [post]
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var body Transition
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	who := actorFrom(c)
	cmd, err := commands.NewTransitionOrderCommand(orderID, who, target)
	if err != nil {
		return s.writeError(c, err)
	}
	updated, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	s.metrics.Transitions.WithLabelValues(who.Role().String(), target.String()).Inc()
	return c.JSON(http.StatusOK, orderFromAggregate(updated))
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim.
//
//	@Summary	Claim a ready order for delivery
//	@Tags		dispatch
//	@Produce	json
//	@Param		orderId	path		string	true	"Order id"
//	@Success	200		{object}	Order
//	@Failure	409		{object}	Error
//	@Router		/orders/{orderId}/claim [post]
func (s *Server) ClaimOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewClaimOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}
	claimed, err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd)
	switch {
	case err == nil:
		s.metrics.Claims.WithLabelValues("won").Inc()
	case errors.Is(err, errs.ErrClaimConflict):
		s.metrics.Claims.WithLabelValues("conflict").Inc()
	default:
		s.metrics.Claims.WithLabelValues("error").Inc()
	}
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderFromAggregate(claimed))
}

// GetVendorStats handles GET /api/v1/vendors/me/stats.
func (s *Server) GetVendorStats(c echo.Context) error {
	who := actorFrom(c)
	if !who.Is(actor.Vendor) {
		return s.writeError(c, errs.NewForbiddenError(who.ID().String(), "vendor", "stats", "only vendors have order stats"))
	}
	query, err := queries.NewGetVendorOrderStatsQuery(who.ID())
	if err != nil {
		return s.writeError(c, err)
	}
	stats, err := s.handlers.VendorOrderStats.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	byStatus := make(map[string]int64, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[status.String()] = n
	}
	return c.JSON(http.StatusOK, VendorStats{
		Total:      stats.Total,
		ByStatus:   byStatus,
		TotalSpent: stats.TotalSpent.String(),
	})
}

// GetProfile handles GET /api/v1/me/profile.
func (s *Server) GetProfile(c echo.Context) error {
	query, err := queries.NewGetProfileStatusQuery(actorFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}
	status, err := s.handlers.ProfileStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, Profile{Role: status.Role.String(), Completed: status.Completed})
}

// orderItems converts the request items. A field that fails to parse is
// reported under its item index and replaced by a valid placeholder so the
// command only reports the remaining problems.
func orderItems(in []NewOrderItem) ([]commands.CreateOrderItem, []error) {
	var problems []error
	items := make([]commands.CreateOrderItem, 0, len(in))
	for i, item := range in {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].productId", i), err))
			productID = kernel.NewUUID()
		}
		price, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			problems = append(problems, errs.NewValueIsOutOfRangeErrorWithCause(
				fmt.Sprintf("items[%d].unitPrice", i), item.UnitPrice.String(), 0, "999999999999.99", err))
			price = kernel.ZeroMoney()
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}
	return items, problems
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}

func limitParam(c echo.Context) (int, error) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return 0, err
	}
	if limit == nil {
		return 0, nil
	}
	return *limit, nil
}
