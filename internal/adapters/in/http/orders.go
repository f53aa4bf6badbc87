package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// placeOrder handles POST /api/v1/orders.
func (s *Server) placeOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	vendorID, err := parseID("vendor_id", req.VendorID)
	if err != nil {
		return err
	}
	items := make([]commands.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := parseID("menu_item_id", item.MenuItemID)
		if err != nil {
			return err
		}
		items = append(items, commands.OrderItem{MenuItemID: menuItemID, Quantity: item.Quantity})
	}
	fulfillment, err := order.ParseFulfillmentMode(req.Fulfillment)
	if err != nil {
		return err
	}
	payment, err := order.ParsePaymentMode(req.Payment)
	if err != nil {
		return err
	}
	destination, err := req.DeliveryLocation.toDomain("delivery_location")
	if err != nil {
		return err
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), caller(c).ID, vendorID, items, fulfillment, payment, req.DeliveryAddress, destination,
	)
	if err != nil {
		return err
	}
	placed, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderFromDomain(placed))
}

// getOrder handles GET /api/v1/orders/:id for the customer, vendor and courier of the order.
func (s *Server) getOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID, caller(c).ID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// matchCourier handles POST /api/v1/orders/:id/match, the vendor's manual re-dispatch.
func (s *Server) matchCourier(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	vendorID := caller(c).ID
	cmd, err := commands.NewMatchCourierCommand(orderID, &vendorID)
	if err != nil {
		return err
	}
	courierID, err := s.handlers.MatchCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matchResponse{OrderID: orderID.String(), CourierID: courierID.String()})
}

func (s *Server) vendorOrders(c echo.Context) error {
	all, err := includeTerminal(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetVendorOrdersQuery(caller(c).ID, all)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetVendorOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lo.Map(views, func(v queries.OrderView, _ int) orderResponse { return orderFromView(v) }))
}

// orderAction serves the transitions whose only input is the order id and the caller.
func (s *Server) orderAction(action commands.OrderAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := pathID(c, "id")
		if err != nil {
			return err
		}
		cmd, err := commands.NewOrderActionCommand(action, orderID, caller(c).ID)
		if err != nil {
			return err
		}
		updated, err := s.handlers.OrderAction.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, orderFromDomain(updated))
	}
}

// markReady answers once the order is READY. Matching may have failed; the
// courier id is then null and the sweep retries.
func (s *Server) markReady(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkOrderReadyCommand(orderID, caller(c).ID)
	if err != nil {
		return err
	}
	result, err := s.handlers.MarkOrderReady.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readyResponse{
		Order:     orderFromDomain(result.Order),
		CourierID: optionalID(result.CourierID),
	})
}
