package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/georgerossis/book-rental-system/app/echoServer/jwtx"
	"github.com/georgerossis/book-rental-system/model"
	rs "github.com/georgerossis/book-rental-system/service/rental"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/rentals
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid := jwtx.UserID(c)

	rental, err := h.Svc.Rent(c.Request().Context(), uid, req.BookID)
	if err != nil {
		return h.fail(c, "rental create", err)
	}
	return c.JSON(http.StatusCreated, rental)
}

// GET /api/rentals?userId=
func (h *Controller) List(c echo.Context) error {
	var filter *int64
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid userId"})
		}
		filter = &id
	}

	rows, err := h.Svc.List(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), filter)
	if err != nil {
		return h.fail(c, "rental list", err)
	}
	if rows == nil {
		rows = []model.Rental{}
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rental, err := h.Svc.Return(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id)
	if err != nil {
		return h.fail(c, "rental return", err)
	}
	return c.JSON(http.StatusOK, rental)
}

// POST /api/rentals/:id/cancel  (admin only)
func (h *Controller) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rental, err := h.Svc.Cancel(c.Request().Context(), jwtx.Role(c), id)
	if err != nil {
		return h.fail(c, "rental cancel", err)
	}
	return c.JSON(http.StatusOK, rental)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch rs.Code(err) {
	case rs.ErrInvalidInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing required fields"})
	case rs.ErrBookNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
	case rs.ErrRentalNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
	case rs.ErrNoCopies:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no copies available for rent"})
	case rs.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case rs.ErrNotActive:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "rental is not active"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
