// Package http is the REST adapter of the fulfillment service. It
// authenticates callers from bearer tokens, turns requests into commands and
// queries and maps domain errors to status codes.
package http

import (
	"context"
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
)

type (
	PlaceOrderHandler interface {
		Handle(ctx context.Context, command commands.PlaceOrderCommand) (*order.Order, error)
	}
	OrderActionHandler interface {
		Handle(ctx context.Context, command commands.OrderActionCommand) (*order.Order, error)
	}
	MarkOrderReadyHandler interface {
		Handle(ctx context.Context, command commands.MarkOrderReadyCommand) (commands.MarkOrderReadyResult, error)
	}
	MatchCourierHandler interface {
		Handle(ctx context.Context, command commands.MatchCourierCommand) (kernel.UUID, error)
	}
	CompleteDeliveryHandler interface {
		Handle(ctx context.Context, command commands.CompleteDeliveryCommand) (settlement.Entry, error)
	}
	RegisterCourierHandler interface {
		Handle(ctx context.Context, command commands.RegisterCourierCommand) (*courier.Courier, error)
	}
	UpdateCourierStatusHandler interface {
		Handle(ctx context.Context, command commands.UpdateCourierStatusCommand) (*courier.Courier, error)
	}
	CreateGroupCartHandler interface {
		Handle(ctx context.Context, command commands.CreateGroupCartCommand) (*groupcart.Cart, error)
	}
	AddGroupCartItemHandler interface {
		Handle(ctx context.Context, command commands.AddGroupCartItemCommand) (groupcart.Contribution, error)
	}
	CheckoutGroupCartHandler interface {
		Handle(ctx context.Context, command commands.CheckoutGroupCartCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	GetVendorOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetVendorOrdersQuery) ([]queries.OrderView, error)
	}
	GetCourierOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetCourierOrdersQuery) ([]queries.OrderView, error)
	}
	GetCourierProfileHandler interface {
		Handle(ctx context.Context, query queries.GetCourierProfileQuery) (queries.CourierProfile, error)
	}
	GetGroupCartHandler interface {
		Handle(ctx context.Context, query queries.GetGroupCartQuery) (queries.GroupCartView, error)
	}
	GetHeatmapHandler interface {
		Handle(ctx context.Context) []ports.HeatPoint
	}
)

// Handlers are the use cases the server exposes.
type Handlers struct {
	PlaceOrder          PlaceOrderHandler
	OrderAction         OrderActionHandler
	MarkOrderReady      MarkOrderReadyHandler
	MatchCourier        MatchCourierHandler
	CompleteDelivery    CompleteDeliveryHandler
	RegisterCourier     RegisterCourierHandler
	UpdateCourierStatus UpdateCourierStatusHandler
	CreateGroupCart     CreateGroupCartHandler
	AddGroupCartItem    AddGroupCartItemHandler
	CheckoutGroupCart   CheckoutGroupCartHandler
	GetOrder            GetOrderHandler
	GetVendorOrders     GetVendorOrdersHandler
	GetCourierOrders    GetCourierOrdersHandler
	GetCourierProfile   GetCourierProfileHandler
	GetGroupCart        GetGroupCartHandler
	GetHeatmap          GetHeatmapHandler
}

// Server routes /api/v1 to the use case handlers.
type Server struct {
	echo     *echo.Echo
	handlers Handlers
	auth     *Authenticator
	logger   logrus.FieldLogger
}

func NewServer(handlers Handlers, auth *Authenticator, logger logrus.FieldLogger) *Server {
	logger = logger.WithField("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	s := &Server{echo: e, handlers: handlers, auth: auth, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := s.echo.Group("/api/v1")
	customerOnly := s.auth.Required(RoleCustomer)
	vendorOnly := s.auth.Required(RoleVendor)
	courierOnly := s.auth.Required(RoleCourier)
	authenticated := s.auth.Required()

	api.POST("/orders", s.placeOrder, customerOnly)
	api.GET("/orders/:id", s.getOrder, authenticated)
	api.POST("/orders/:id/match", s.matchCourier, vendorOnly)

	api.GET("/vendor/orders", s.vendorOrders, vendorOnly)
	api.POST("/vendor/orders/:id/accept", s.orderAction(commands.AcceptOrder), vendorOnly)
	api.POST("/vendor/orders/:id/reject", s.orderAction(commands.RejectOrder), vendorOnly)
	api.POST("/vendor/orders/:id/ready", s.markReady, vendorOnly)
	api.POST("/vendor/orders/:id/hand-over", s.orderAction(commands.HandOverOrder), vendorOnly)

	api.POST("/courier/profile", s.registerCourier, courierOnly)
	api.GET("/courier/profile", s.courierProfile, courierOnly)
	api.POST("/courier/status", s.updateCourierStatus, courierOnly)
	api.GET("/courier/orders", s.courierOrders, courierOnly)
	api.GET("/courier/heatmap", s.heatmap, courierOnly)
	api.POST("/courier/orders/:id/accept", s.orderAction(commands.AcceptAssignment), courierOnly)
	api.POST("/courier/orders/:id/pickup", s.orderAction(commands.PickUpOrder), courierOnly)
	api.POST("/courier/orders/:id/on-way", s.orderAction(commands.StartDelivery), courierOnly)
	api.POST("/courier/orders/:id/complete", s.completeDelivery, courierOnly)

	api.POST("/group-carts", s.createGroupCart, authenticated)
	api.GET("/group-carts/:code", s.getGroupCart)
	api.POST("/group-carts/:code/items", s.addGroupCartItem, s.auth.Optional())
	api.POST("/group-carts/:id/checkout", s.checkoutGroupCart, authenticated)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks until the server is shut down.
func (s *Server) Start(address string) error {
	s.logger.WithField("address", address).Info("http server listening")
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
