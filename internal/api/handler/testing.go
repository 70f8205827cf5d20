package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-rest-api/internal/api"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	return e
}
