// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/georgerossis/book-rental-system/model"
)

const (
	KeyUserID = "user_id"
	KeyRole   = "role"
)

// Identity pulls (user id, role) out of the verified token stored by
// echo-jwt.
func Identity(c echo.Context) (int64, model.Role, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return 0, "", errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid jwt claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("sub missing in claims")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return 0, "", errors.New("role missing in claims")
	}
	return int64(sub), model.Role(role), nil
}

// UserID returns the caller id set by the auth middleware.
func UserID(c echo.Context) int64 {
	uid, _ := c.Get(KeyUserID).(int64)
	return uid
}

// Role returns the caller role set by the auth middleware.
func Role(c echo.Context) model.Role {
	role, _ := c.Get(KeyRole).(model.Role)
	return role
}
