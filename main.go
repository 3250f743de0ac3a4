// Package main book rental API.
//
// @title           Book Rental API
// @version         1.0
// @description     Book rental service (catalog, rentals, users, auth).
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

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/georgerossis/book-rental-system/app/echoServer"
	authctrl "github.com/georgerossis/book-rental-system/app/echoServer/controller/auth"
	bookctrl "github.com/georgerossis/book-rental-system/app/echoServer/controller/book"
	rentalctrl "github.com/georgerossis/book-rental-system/app/echoServer/controller/rental"
	userctrl "github.com/georgerossis/book-rental-system/app/echoServer/controller/user"
	"github.com/georgerossis/book-rental-system/app/echoServer/validation"
	"github.com/georgerossis/book-rental-system/config"
	bookrepo "github.com/georgerossis/book-rental-system/repository/book"
	rentalrepo "github.com/georgerossis/book-rental-system/repository/rental"
	userrepo "github.com/georgerossis/book-rental-system/repository/user"
	authsvc "github.com/georgerossis/book-rental-system/service/auth"
	booksvc "github.com/georgerossis/book-rental-system/service/book"
	rentalsvc "github.com/georgerossis/book-rental-system/service/rental"
	usersvc "github.com/georgerossis/book-rental-system/service/user"
	"github.com/georgerossis/book-rental-system/util/cache"
	"github.com/georgerossis/book-rental-system/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// cache is optional; the catalog falls back to the DB without it
	var cc cache.Client
	if cfg.RedisAddr != "" {
		cc, err = cache.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable, catalog cache disabled", "err", err)
			cc = nil
		}
	}

	// repos
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	ur := userrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br, cc)
	rs := rentalsvc.New(rr)
	us := usersvc.New(ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Book:      bookC,
		Rental:    rentalC,
		User:      userC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
