// Package main runs the agri-vision API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/app"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/config"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/httpapi"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/news"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/platform/database"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/platform/migrations"
	mysqlstore "github.com/Hozaifa-Bhutta/agri-vision/internal/storage/mysql"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/weather"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	migrate := flag.Bool("migrate", false, "apply schema migrations and exit")
	flag.Parse()

	// .env is optional; deployments set real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging).WithField("component", "agri-server")

	stores := app.Stores{}
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := database.Open(ctx, cfg.Database)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("connect to database")
		}
		defer db.Close()

		if *migrate {
			if err := migrations.Apply(context.Background(), db.DB); err != nil {
				log.WithError(err).Fatal("apply migrations")
			}
			log.Info("migrations applied")
			return
		}

		store := mysqlstore.New(db, log)
		stores = app.Stores{
			Users:     store,
			Reference: store,
			Yields:    store,
			Reports:   store,
		}
	} else {
		if *migrate {
			log.Fatal("migrations require DATABASE_DSN")
		}
		log.Warn("DATABASE_DSN not set; using in-memory store")
	}

	opts := app.Options{
		News: news.New(news.Config{APIKey: cfg.News.APIKey}),
	}
	if cfg.Weather.APIKey != "" {
		opts.Weather = weather.New(weather.Config{APIKey: cfg.Weather.APIKey})
	} else {
		log.Warn("WEATHER_API_KEY not set; getCurrentWeather disabled")
	}

	application := app.New(stores, opts, log)
	handler := httpapi.NewHandler(application, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
