package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes mounts the API on e. limiter may be nil.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *Authenticator, limiter *RateLimiter) {
	e.Use(RequestLogger(s.logger), Instrument(s.metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	polled := []echo.MiddlewareFunc{}
	if limiter != nil {
		polled = append(polled, limiter.Middleware())
	}

	api := e.Group("/api/v1", auth.Middleware())
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/claimable", s.ListClaimableOrders, polled...)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/transitions", s.TransitionOrder)
	api.POST("/orders/:orderId/claim", s.ClaimOrder, polled...)
	api.GET("/vendors/me/stats", s.GetVendorStats)
	api.GET("/me/profile", s.GetProfile)
	api.GET("/events", s.StreamEvents)
}
