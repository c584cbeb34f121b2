package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/harmonia/music-store/cache"
	"github.com/harmonia/music-store/httpapi"
	"github.com/harmonia/music-store/internal/seed"
	"github.com/harmonia/music-store/pkg/di"
	"github.com/harmonia/music-store/storage"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.driver", "sqlite3")
	viper.SetDefault("database.dsn", "file:harmonia.db?cache=shared&_fk=1")
	viper.SetDefault("cache.backend", cache.BackendMemory)
	viper.SetDefault("seed.enabled", true)
	if err := viper.ReadInConfig(); err != nil {
		// A missing config file falls back to defaults; anything else is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Sprintf("read config failed: %v", err))
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := storage.Open(viper.GetString("database.driver"), viper.GetString("database.dsn"))
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := storage.InitSchema(ctx, db); err != nil {
		panic(fmt.Sprintf("init schema failed: %v", err))
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.Backend = viper.GetString("cache.backend")
	if viper.IsSet("cache.capacity") {
		cacheCfg.Capacity = viper.GetInt("cache.capacity")
	}
	if viper.IsSet("cache.num_shards") {
		cacheCfg.NumShards = viper.GetInt("cache.num_shards")
	}
	if viper.IsSet("cache.ttl") {
		cacheCfg.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("cache.eviction_percentage") {
		cacheCfg.EvictionPercentage = viper.GetInt("cache.eviction_percentage")
	}

	container, err := di.NewContainer(db, cacheCfg)
	if err != nil {
		panic(fmt.Sprintf("wire container failed: %v", err))
	}

	if viper.GetBool("seed.enabled") {
		seeder := seed.New(
			container.CategoryRepository(),
			container.InstrumentRepository(),
			container.CustomerRepository(),
			container.ReviewRepository(),
			logger,
		)
		if err := seeder.Run(ctx); err != nil {
			panic(fmt.Sprintf("seed failed: %v", err))
		}
	}

	router := httpapi.NewRouter(httpapi.Services{
		Instruments: container.Instruments(),
		Customers:   container.Customers(),
		Categories:  container.Categories(),
		Reviews:     container.Reviews(),
	}, logger)

	addr := viper.GetString("server.addr")
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
