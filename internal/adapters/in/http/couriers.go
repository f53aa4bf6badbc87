package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

func (s *Server) registerCourier(c echo.Context) error {
	var req registerCourierRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewRegisterCourierCommand(caller(c).ID, req.Name)
	if err != nil {
		return err
	}
	registered, err := s.handlers.RegisterCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, courierFromDomain(registered))
}

func (s *Server) courierProfile(c echo.Context) error {
	query, err := queries.NewGetCourierProfileQuery(caller(c).ID)
	if err != nil {
		return err
	}
	profile, err := s.handlers.GetCourierProfile.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courierFromProfile(profile))
}

// updateCourierStatus handles POST /api/v1/courier/status. Omitting the
// location keeps the last known one.
func (s *Server) updateCourierStatus(c echo.Context) error {
	var req courierStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	location, err := req.Location.toDomain("location")
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateCourierStatusCommand(caller(c).ID, req.Online, location)
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateCourierStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courierFromDomain(updated))
}

func (s *Server) courierOrders(c echo.Context) error {
	all, err := includeTerminal(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCourierOrdersQuery(caller(c).ID, all)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetCourierOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lo.Map(views, func(v queries.OrderView, _ int) orderResponse { return orderFromView(v) }))
}

func (s *Server) heatmap(c echo.Context) error {
	return c.JSON(http.StatusOK, s.handlers.GetHeatmap.Handle(c.Request().Context()))
}

// completeDelivery handles POST /api/v1/courier/orders/:id/complete and
// returns the settlement entry booked with it.
func (s *Server) completeDelivery(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteDeliveryCommand(orderID, caller(c).ID)
	if err != nil {
		return err
	}
	entry, err := s.handlers.CompleteDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settlementFromDomain(entry))
}
