package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/georgerossis/book-rental-system/app/echoServer/controller/auth"
	"github.com/georgerossis/book-rental-system/app/echoServer/controller/book"
	"github.com/georgerossis/book-rental-system/app/echoServer/controller/rental"
	"github.com/georgerossis/book-rental-system/app/echoServer/controller/user"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Rental    *rental.Controller
	User      *user.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Authenticated
	authed := e.Group("/api", JWTAuth(c.JWTSecret)...)
	authed.GET("/auth/verify", c.Auth.Verify)

	// Books
	authed.GET("/books", c.Book.List)
	authed.GET("/books/:id", c.Book.Detail)

	// Rentals
	authed.POST("/rentals", c.Rental.Create)
	authed.GET("/rentals", c.Rental.List)
	authed.POST("/rentals/:id/return", c.Rental.Return)

	// Admin
	admin := authed.Group("", RequireAdmin())
	admin.POST("/books", c.Book.Create)
	admin.PUT("/books/:id", c.Book.Update)
	admin.DELETE("/books/:id", c.Book.Delete)
	admin.POST("/rentals/:id/cancel", c.Rental.Cancel)
	admin.GET("/users", c.User.List)
	admin.POST("/users", c.User.Create)
	admin.PUT("/users/:id", c.User.Update)
	admin.DELETE("/users/:id", c.User.Delete)
}
