package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"jobly/internal/core/auth"
	"jobly/internal/core/config"
	"jobly/internal/core/database"
	"jobly/internal/core/logger"
	"jobly/internal/core/server"
	"jobly/internal/core/validate"
	"jobly/internal/repo"
	"jobly/internal/service"
	"jobly/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected")

	if cfg.DB.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatal("migrate failed", zap.Error(err))
		}
		log.Info("migrations applied")
	}

	v, err := validate.New()
	if err != nil {
		log.Fatal("load schemas", zap.Error(err))
	}

	// 依赖
	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	userRepo := repo.NewUserRepo(db)
	users := service.NewUsers(userRepo, cfg.Security.BcryptCost)

	r := router.NewAPIEngine(router.Deps{
		Log:       log,
		JWT:       jwter,
		Validator: v,
		CORS:      cfg.CORS,
		Limits:    cfg.Limits,
		Auth:      service.NewAuth(users, userRepo, jwter, log),
		Users:     users,
		Companies: service.NewCompanies(repo.NewCompanyRepo(db)),
		Jobs:      service.NewJobs(repo.NewJobRepo(db)),
	})

	// HTTP Server
	h := cfg.App.HTTP
	srv := server.BuildServer(
		h.Addr(), r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	log.Info("jobly api starting",
		zap.String("addr", h.Addr()),
		zap.String("env", cfg.App.Env),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("jobly api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("jobly api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.OptsFrom(cfg.DB), l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
