package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/BramFam96/messagely-v1/internal/accounts"
	"github.com/BramFam96/messagely-v1/internal/config"
	"github.com/BramFam96/messagely-v1/internal/db"
	"github.com/BramFam96/messagely-v1/internal/handlers"
	"github.com/BramFam96/messagely-v1/internal/messages"
	"github.com/BramFam96/messagely-v1/internal/middleware"
	"github.com/BramFam96/messagely-v1/internal/observability"
	"github.com/BramFam96/messagely-v1/internal/rabbitmq"
	"github.com/BramFam96/messagely-v1/internal/repositories"
	"github.com/BramFam96/messagely-v1/internal/telemetry"
	"github.com/BramFam96/messagely-v1/internal/token"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer database.Close()

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AuditExchange)
	defer publisher.Close()
	audit := telemetry.NewAuditEmitter(publisher, cfg.AuditRoutingKey, "messagely", cfg.Environment)

	userRepo := repositories.NewUserRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	accountsSvc := accounts.NewService(userRepo, cfg.BcryptCost)
	messagesSvc := messages.NewService(messageRepo)

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := handlers.NewAuthHandler(accountsSvc, tokens, audit)
	userHandler := handlers.NewUserHandler(accountsSvc)
	messageHandler := handlers.NewMessageHandler(messagesSvc, audit)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware("messagely"))

	authRequired := middleware.AuthMiddleware(tokens)

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	router.GET("/users", authRequired, userHandler.List)
	router.GET("/users/:username", authRequired, userHandler.Get)
	router.GET("/users/:username/from", authRequired, messageHandler.ListSent)
	router.GET("/users/:username/to", authRequired, messageHandler.ListReceived)

	router.GET("/messages/:id", authRequired, messageHandler.Get)
	router.POST("/messages", authRequired, messageHandler.Send)
	router.POST("/messages/:id/read", authRequired, messageHandler.MarkRead)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
