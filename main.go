package main

import (
	"time"

	"github.com/facundofernanddez/go-reserve/config"
	"github.com/facundofernanddez/go-reserve/internal/clock"
	"github.com/facundofernanddez/go-reserve/internal/handler"
	"github.com/facundofernanddez/go-reserve/internal/middleware"
	"github.com/facundofernanddez/go-reserve/internal/repository"
	"github.com/facundofernanddez/go-reserve/internal/service"
	"github.com/facundofernanddez/go-reserve/pkg/database"
	"github.com/facundofernanddez/go-reserve/pkg/logger"
	"github.com/facundofernanddez/go-reserve/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Environment)
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		log.Fatal("failed to set up database", zap.Error(err))
	}

	// RabbitMQ publisher: lifecycle events for notification/payment services
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	complexRepo := repository.NewComplexRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Services
	clk := clock.NewSystem()
	complexSvc := service.NewComplexService(complexRepo, clk, cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)
	courtSvc := service.NewCourtService(courtRepo, complexRepo)
	reservationSvc := service.NewReservationService(reservationRepo, courtRepo, publisher, clk, service.BookingRules{
		SlotDuration: cfg.SlotDuration(),
		OpenHour:     cfg.OpenHour,
		CloseHour:    cfg.CloseHour,
		Location:     cfg.Location(),
	}, log)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "go-reserve"})
	})

	adminGuard := middleware.RequireAdmin(cfg.JWTSecret)
	handler.NewComplexHandler(complexSvc).RegisterRoutes(e)
	handler.NewCourtHandler(courtSvc).RegisterRoutes(e, adminGuard)
	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)

	log.Info("go-reserve starting", zap.String("port", cfg.ServerPort))
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
