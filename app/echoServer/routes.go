package echoServer

import (
	agreementctrl "carrental/app/echoServer/controller/agreement"
	authctrl "carrental/app/echoServer/controller/auth"
	requesterctrl "carrental/app/echoServer/controller/requester"
	vehiclectrl "carrental/app/echoServer/controller/vehicle"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *authctrl.Controller
	Vehicle   *vehiclectrl.Controller
	Requester *requesterctrl.Controller
	Agreement *agreementctrl.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))

	// Vehicles
	auth.GET("/vehicles", c.Vehicle.List)
	auth.GET("/vehicles/available", c.Vehicle.ListAvailable)
	auth.GET("/vehicles/search", c.Vehicle.Search)
	auth.GET("/vehicles/:id", c.Vehicle.Detail)
	auth.POST("/vehicles", c.Vehicle.Create)
	auth.PUT("/vehicles/:id", c.Vehicle.Update)
	auth.DELETE("/vehicles/:id", c.Vehicle.Delete)

	// Requesters
	auth.GET("/requesters", c.Requester.List)
	auth.GET("/requesters/:id", c.Requester.Detail)
	auth.POST("/requesters", c.Requester.Create)
	auth.PUT("/requesters/:id", c.Requester.Update)
	auth.DELETE("/requesters/:id", c.Requester.Delete)

	// Agreements
	auth.GET("/agreements", c.Agreement.List)
	auth.GET("/agreements/pending", c.Agreement.ListPending)
	auth.GET("/agreements/overdue", c.Agreement.ListOverdue)
	auth.GET("/agreements/active", c.Agreement.ListActiveOn)
	auth.GET("/agreements/status/:status", c.Agreement.ListByStatus)
	auth.GET("/agreements/:id", c.Agreement.Detail)
	auth.POST("/agreements", c.Agreement.Create)
	auth.PUT("/agreements/:id", c.Agreement.Update)
	auth.DELETE("/agreements/:id", c.Agreement.Delete)
	auth.PATCH("/agreements/:id/approve", c.Agreement.Approve)
	auth.PATCH("/agreements/:id/reject", c.Agreement.Reject)
	auth.PATCH("/agreements/:id/activate", c.Agreement.Activate)
	auth.PATCH("/agreements/:id/finalize", c.Agreement.Finalize)
	auth.PATCH("/agreements/:id/cancel", c.Agreement.Cancel)
}
