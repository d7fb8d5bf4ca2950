// Package main car rental agreements API.
//
// @title           Car Rental Agreements API
// @version         1.0
// @description     Rental agreement lifecycle (vehicles, requesters, agreements).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"carrental/app/echoServer"
	agreementctrl "carrental/app/echoServer/controller/agreement"
	authctrl "carrental/app/echoServer/controller/auth"
	requesterctrl "carrental/app/echoServer/controller/requester"
	vehiclectrl "carrental/app/echoServer/controller/vehicle"
	"carrental/app/echoServer/validation"
	"carrental/config"
	agreementrepo "carrental/repository/agreement"
	authrepo "carrental/repository/auth"
	requesterrepo "carrental/repository/requester"
	vehiclerepo "carrental/repository/vehicle"
	agreementsvc "carrental/service/agreement"
	authsvc "carrental/service/auth"
	requestersvc "carrental/service/requester"
	vehiclesvc "carrental/service/vehicle"
	"carrental/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	vr := vehiclerepo.New(db)
	qr := requesterrepo.New(db)
	gr := agreementrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	vs := vehiclesvc.New(vr)
	qs := requestersvc.New(qr)
	gs := agreementsvc.New(db, gr, vr, qr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	vehicleC := &vehiclectrl.Controller{Svc: vs, V: v, Log: log}
	requesterC := &requesterctrl.Controller{Svc: qs, V: v, Log: log}
	agreementC := &agreementctrl.Controller{Svc: gs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Vehicle:   vehicleC,
		Requester: requesterC,
		Agreement: agreementC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
