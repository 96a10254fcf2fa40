package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "staffdesk/docs" // swagger docs

	"staffdesk/internal/auth"
	"staffdesk/internal/cache"
	"staffdesk/internal/config"
	"staffdesk/internal/db"
	"staffdesk/internal/handler"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
	"staffdesk/internal/router"
	"staffdesk/internal/service"
)

// @title Staffdesk Employee Admin API
// @version 1.0
// @description Employee records admin API with cookie sessions, JWT access/refresh rotation, and role-based authorization.
// @host localhost:4000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Employee{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cookieManager := auth.NewCookieManager(cfg.IsProduction(), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authService := service.NewAuthService(userRepo, jwtService)
	employeeService := service.NewEmployeeService(employeeRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService, cookieManager)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	router.Register(e, cfg, jwtService, userRepo, authHandler, employeeHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
