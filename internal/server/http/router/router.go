package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderstate/internal/server/http/handlers"
	"github.com/polkiloo/orderstate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LifecycleFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	transitionHandler := handlers.NewTransitionHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")
	admin := api.Group("/admin")
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))

	orders := authorized.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.POST("/transitions", transitionHandler.Batch)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/payments", orderHandler.Payments)
	orders.GET("/:id/history", orderHandler.History)
	orders.GET("/:id/readiness", paymentHandler.Readiness)
	orders.POST("/:id/transition", transitionHandler.Transition)
	orders.GET("/:id/transition/:target", transitionHandler.Preview)

	payments := authorized.Group("/payments")
	payments.POST("", paymentHandler.Record)
	payments.POST("/validation", paymentHandler.BatchValidate)
	payments.GET("/:id/validation", paymentHandler.Validate)

	return engine
}
