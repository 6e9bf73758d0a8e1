package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberledger-backend/config"
	"barberledger-backend/logger"
	"barberledger-backend/routes"
	"barberledger-backend/services"
	"barberledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid timezone", "error", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("failed to connect database", "error", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var sender services.MessageSender
	if cfg.TwilioEnabled() {
		sender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	rt := routes.NewRouter(db, routes.Options{
		Location:     loc,
		Tokens:       utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiryHours),
		Log:          log,
		Registry:     registry,
		Sender:       sender,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.Production(),
	})
	r := routes.SetupRouter(rt)
	printRoutes(r, log)

	if cfg.ReengagementCron != "" {
		if sender == nil {
			log.Warn("REENGAGEMENT_CRON set but Twilio is not configured; scheduler disabled")
		} else {
			scheduler, err := services.StartReengagementScheduler(cfg.ReengagementCron, rt.Reengagement.Reengagement, log)
			if err != nil {
				log.Fatal("invalid REENGAGEMENT_CRON", "spec", cfg.ReengagementCron, "error", err)
			}
			defer scheduler.Stop()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

func printRoutes(r *gin.Engine, log *logger.Logger) {
	for _, route := range r.Routes() {
		log.Debug("route", "method", route.Method, "path", route.Path)
	}
}
