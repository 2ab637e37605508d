package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fossilario/internal/auth"
	"fossilario/internal/cache"
	"fossilario/internal/config"
	"fossilario/internal/db"
	"fossilario/internal/handler"
	"fossilario/internal/model"
	"fossilario/internal/repository"
	"fossilario/internal/router"
	"fossilario/internal/service"
	"fossilario/internal/storage"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Fossil{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	imageStore, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	fossilRepo := repository.NewFossilRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService)
	fossilService := service.NewFossilService(fossilRepo, imageStore, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	fossilHandler := handler.NewFossilHandler(fossilService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, authHandler, fossilHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
