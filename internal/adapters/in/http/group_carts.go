package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

func (s *Server) createGroupCart(c echo.Context) error {
	cmd, err := commands.NewCreateGroupCartCommand(kernel.NewUUID(), caller(c).ID)
	if err != nil {
		return err
	}
	cart, err := s.handlers.CreateGroupCart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, groupCartFromDomain(cart))
}

// getGroupCart is public: the code is the capability.
func (s *Server) getGroupCart(c echo.Context) error {
	query, err := queries.NewGetGroupCartQuery(c.Param("code"))
	if err != nil {
		return err
	}
	view, err := s.handlers.GetGroupCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groupCartFromView(view))
}

// addGroupCartItem accepts guests. A signed-in caller is recorded as the
// contributor.
func (s *Server) addGroupCartItem(c echo.Context) error {
	var req addGroupCartItemRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	menuItemID, err := parseID("menu_item_id", req.MenuItemID)
	if err != nil {
		return err
	}
	var contributorID *kernel.UUID
	if identity, ok := identityOf(c); ok {
		contributorID = &identity.ID
	}

	cmd, err := commands.NewAddGroupCartItemCommand(c.Param("code"), menuItemID, req.Quantity, req.Label, contributorID)
	if err != nil {
		return err
	}
	added, err := s.handlers.AddGroupCartItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contributionOf(added))
}

func (s *Server) checkoutGroupCart(c echo.Context) error {
	cartID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req checkoutGroupCartRequest
	if err = c.Bind(&req); err != nil {
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

	cmd, err := commands.NewCheckoutGroupCartCommand(
		kernel.NewUUID(), cartID, caller(c).ID, payment, req.DeliveryAddress, destination,
	)
	if err != nil {
		return err
	}
	placed, err := s.handlers.CheckoutGroupCart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderFromDomain(placed))
}
