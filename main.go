package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "bikie/internal/config"
	router "bikie/internal/http"
	"bikie/internal/http/handlers"
	"bikie/internal/logging"
	"bikie/internal/relay"
	"bikie/internal/repositories"
	"bikie/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if err := env.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	log, err := logging.New(env.Environment, env.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	seed, err := repositories.LoadSeed(env.SeedFile)
	if err != nil {
		log.Fatal("failed to load seed data", zap.Error(err))
	}

	store, ping, err := openStore(env, seed, log)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", env.StoreDriver), zap.Error(err))
	}
	defer intconfig.CloseDB()

	auth, err := services.NewAuthService(env.AdminEmail, env.AdminPassword, env.AdminPasswordHash, env.JWTSecret, env.TokenTTL)
	if err != nil {
		log.Fatal("failed to init admin auth", zap.Error(err))
	}
	if env.FormRelayAccessKey == "" {
		log.Warn("FORM_RELAY_ACCESS_KEY is empty; booking submissions will be rejected by the relay")
	}

	hd := &handlers.Handler{
		Catalog: services.CatalogService{Vehicles: store, Testimonials: store, Location: time.Local},
		Bookings: services.BookingService{
			Vehicles: store,
			Relay:    relay.NewClient(env.FormRelayURL, env.FormRelayAccessKey, env.FormRelayTimeout),
			Location: time.Local,
		},
		Admin: services.AdminService{Vehicles: store, Bookings: store, Customers: store},
		Auth:  auth,
	}
	r := router.NewRouter(env, router.Deps{Handler: hd, Ping: ping, Log: log})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.FormRelayTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr), zap.String("store", env.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return
	}

	log.Info("server stopped")
}

// openStore returns the configured repository backend and, for MySQL, a
// health check.
func openStore(env intconfig.Env, seed repositories.Seed, log *zap.Logger) (repositories.Store, handlers.Pinger, error) {
	if env.StoreDriver != intconfig.StoreMySQL {
		return repositories.NewMemoryStore(seed), nil, nil
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		return nil, nil, err
	}
	store := repositories.MySQLStore{DB: db, Testimonials: seed.Testimonials}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, nil, err
	}
	seeded, err := store.SeedIfEmpty(ctx, seed)
	if err != nil {
		return nil, nil, err
	}
	if seeded {
		log.Info("seeded empty database", zap.Int("vehicles", len(seed.Vehicles)), zap.Int("bookings", len(seed.Bookings)))
	}
	return store, intconfig.PingDB, nil
}
