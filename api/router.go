package api

import (
	"net/http"
	"path/filepath"

	"github.com/Domenick1991/simplyfly/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Flights    *FlightHandler
	Bookings   *BookingHandler
	Passengers *PassengerHandler
	Reviews    *ReviewHandler
	Admin      *AdminHandler
	Owners     *OwnerHandler

	Tokens     TokenParser
	Limiter    RateLimiter
	RateLimit  config.RateLimitConfig
	SwaggerDir string
	Log        *logrus.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(d.Log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.SwaggerDir != "" {
		router.StaticFile("/docs/openapi.json", filepath.Join(d.SwaggerDir, "openapi.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))
	}

	api := router.Group("/api")
	authed := Authenticate(d.Tokens)

	authPublic := api.Group("/auth")
	if d.RateLimit.Enabled && d.Limiter != nil {
		authPublic.Use(RateLimit(d.Limiter, d.RateLimit.Requests, d.RateLimit.Window(), d.Log))
	}
	d.Auth.RegisterPublic(authPublic)
	d.Auth.Register(api.Group("/auth", authed))

	d.Flights.RegisterPublic(api.Group("/flights"))
	d.Flights.Register(api.Group("/flights", authed))

	d.Bookings.Register(api.Group("/bookings", authed))
	d.Passengers.Register(api.Group("/passenger", authed))

	d.Reviews.RegisterPublic(api.Group("/reviews"))
	d.Reviews.Register(api.Group("/reviews", authed))

	d.Admin.Register(api.Group("/admin", authed))
	d.Owners.Register(api.Group("/flightowner", authed))

	return router
}
