package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/georgerossis/book-rental-system/app/echoServer/jwtx"
	"github.com/georgerossis/book-rental-system/model"
	as "github.com/georgerossis/book-rental-system/service/auth"
)

type Controller struct {
	Svc as.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/auth/register
func (h *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	u, token, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, as.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "user already exists"})
		case errors.Is(err, as.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing required fields"})
		default:
			h.Log.Error("register", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"user":    u,
		"token":   token,
	})
}

// POST /api/auth/login
func (h *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password required"})
	}

	u, token, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, as.ErrInvalidCreds):
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid email or password"})
		case errors.Is(err, as.ErrInactive):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "user account is inactive"})
		default:
			h.Log.Error("login", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"user":    u,
		"token":   token,
	})
}

// GET /api/auth/verify
func (h *Controller) Verify(c echo.Context) error {
	u, err := h.Svc.Verify(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		if errors.Is(err, as.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		h.Log.Error("verify", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
