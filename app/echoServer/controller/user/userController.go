package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/georgerossis/book-rental-system/model"
	us "github.com/georgerossis/book-rental-system/service/user"
)

// Controller exposes admin-only user management.
type Controller struct {
	Svc us.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// POST /api/users
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	u, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "user create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// PUT /api/users/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req model.UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	u, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, "user update", err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "user delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, us.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
	case errors.Is(err, us.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"message": "user already exists"})
	case errors.Is(err, us.ErrBadInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing required fields"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
