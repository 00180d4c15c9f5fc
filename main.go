package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"relapse_predict/config"
	"relapse_predict/handlers"
	"relapse_predict/logger"
	"relapse_predict/metrics"
	"relapse_predict/services"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	recorder := metrics.NewRecorder()
	assessor := services.NewRiskAssessor(loadPredictor(cfg.Model.Path))
	recorder.SetModelLoaded(assessor.ModelLoaded())

	h := handlers.NewHandler(assessor, recorder, cfg.Server.MaxBodyBytes)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(h),
		ReadTimeout:  time.Duration(cfg.Timeouts.RequestSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Timeouts.ResponseSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Timeouts.IdleSec) * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("服务器启动", "address", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("服务器启动失败", "error", err)
			os.Exit(1)
		}
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeouts.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭失败", "error", err)
	}
	logger.Info("服务器已关闭")
}

// loadPredictor 加载失败时返回nil，服务照常启动并报告模型未加载
func loadPredictor(path string) services.Predictor {
	model, err := services.LoadModel(path)
	if err != nil {
		logger.Error("模型加载失败", "path", path, "error", err)
		return nil
	}
	logger.Info("模型加载成功", "path", path, "type", model.Type, "version", model.Version)
	return model
}

func newRouter(h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	handlers.RegisterRoutes(r, h)
	return r
}
