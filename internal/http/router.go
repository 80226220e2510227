package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"smilescript/backend/internal/config"
	"smilescript/backend/internal/handler"
)

func NewRouter(commLogHandler *handler.CommLogHandler, staticDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// The dashboard is served from a different origin during development.
	e.Use(middleware.CORS())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	api.GET("/health", health)
	commLogHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":    config.AppName,
		"version": config.AppVersion,
	})
}
