package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/takatori/gprofiler/internal/enrichment"
	"github.com/takatori/gprofiler/internal/server/handler"
)

func InitServer(enricher enrichment.Enricher, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	session := handler.NewSession(enricher)

	e.GET("/health", handler.NewHealthHandler())
	e.POST("/enrichment/query", handler.NewQueryHandler(session))
	e.GET("/enrichment/query", handler.NewActiveQueryHandler(session))
	e.POST("/enrichment/url", handler.NewQueryURLHandler(session))
	e.GET("/enrichment/url", handler.NewActiveQueryURLHandler(session))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return e, nil
}
