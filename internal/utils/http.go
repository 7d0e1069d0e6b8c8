package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the JSON envelope for every REST reply of the map service
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    int         `json:"code,omitempty"`
}

// SuccessResponse writes a successful envelope
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{Success: true, Message: message, Data: data})
}

// ErrorResponse writes a failed envelope
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return c.JSON(statusCode, Response{Success: false, Error: message, Code: statusCode})
}

// UnauthorizedResponse sends a 401
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message)
}

// BadRequestResponse sends a 400
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}
