package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanserve-backend/internal/adapter/http"
	"loanserve-backend/internal/adapter/middleware"
	"loanserve-backend/internal/adapter/notifier"
	"loanserve-backend/internal/app"
	"loanserve-backend/internal/config"
	"loanserve-backend/internal/infrastructure/cache"
	"loanserve-backend/internal/infrastructure/db"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	application := app.New(app.Options{
		DB:            gdb,
		Sink:          notifier.NewRedisSink(rdb),
		AnnualRatePct: cfg.AnnualRatePct,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	h := httpadp.NewHandler(application.Dispatcher)
	idempTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	h.Register(e, middleware.Idempotency(rdb, idempTTL))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
