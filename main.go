package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apirest "github.com/gnawlrak/Copy-of-Dot-Agents-sub000/api/rest"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/config"
	mw "github.com/gnawlrak/Copy-of-Dot-Agents-sub000/middleware"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/scheduler"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/server"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		cfg = config.Default()
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// ---- Level / Weapon Tables ----
	res := resource.NewLoader(cfg.Data.LevelsPath, cfg.Data.WeaponsPath, logger)
	if err := res.Load(); err != nil {
		logger.Warn("resource load warning, running on built-ins", zap.Error(err))
	}

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()

	// ---- Rooms ----
	mgr := server.NewManager(cfg, res, nil, sched, logger)
	defer mgr.StopAll()

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	rooms := apirest.NewRoomHandler(mgr, res, logger)
	rooms.Register(r.Group("/api"))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("http: %v", err)
	}
}
