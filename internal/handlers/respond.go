package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the success response shape shared by every endpoint.
type envelope struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Count   *int        `json:"count,omitempty"`
}

func respond(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, envelope{Data: data, Message: message})
}

func respondCount(c echo.Context, data interface{}, message string, count int) error {
	return c.JSON(http.StatusOK, envelope{Data: data, Message: message, Count: &count})
}
