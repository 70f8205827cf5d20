package handler

import "github.com/labstack/echo/v4"

// RegisterRoutes はAPIのルートを登録する
func RegisterRoutes(e *echo.Echo, events *EventHandler, health *HealthHandler) {
	e.GET("/health", health.Check)

	g := e.Group("/api/events")
	g.POST("", events.Create)
	g.GET("", events.List)
	g.GET("/base-price", events.ListByBasePrice)
	g.GET("/:id", events.GetByID)
}
