package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/get_availability"
	getBookingsHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/get_bookings"
	getConfigHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/get_config"
	getHoursHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/get_hours"
	getRevenueHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/get_revenue"
	listBookingsHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/list_bookings"
	updateConfigHandler "github.com/abrans2005/cycling-booking/internal/api/handlers/update_config"
	"github.com/abrans2005/cycling-booking/internal/api/middleware"
	"github.com/abrans2005/cycling-booking/internal/config"
	appconfigRepo "github.com/abrans2005/cycling-booking/internal/infra/storage/appconfig"
	bookingRepo "github.com/abrans2005/cycling-booking/internal/infra/storage/booking"
	serverchanClient "github.com/abrans2005/cycling-booking/internal/notify/serverchan"
	"github.com/abrans2005/cycling-booking/internal/schedule"
	appconfigService "github.com/abrans2005/cycling-booking/internal/service/appconfig"
	bookingsService "github.com/abrans2005/cycling-booking/internal/service/bookings"
	getAvailabilityUC "github.com/abrans2005/cycling-booking/internal/usecase/get_availability"
	submitBookingUC "github.com/abrans2005/cycling-booking/internal/usecase/submit_booking"
	"github.com/abrans2005/cycling-booking/pkg/dbmetrics"
	"github.com/abrans2005/cycling-booking/pkg/logger"
	"github.com/abrans2005/cycling-booking/pkg/metrics"
	"github.com/abrans2005/cycling-booking/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting cycling-booking service...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Schedule and config storage, either Postgres or in-process.
	var (
		store         schedule.Store
		configStorage appconfigService.Storage
		db            *sql.DB
	)

	switch cfg.Storage.Engine {
	case "memory":
		store = schedule.NewMemStore()
		configStorage = appconfigRepo.NewMemRepository()
		log.Info("Using in-memory storage engine")

	default:
		db, err = sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var (
			dbExec   dbmetrics.DBExecutor
			beginner txmanager.TxBeginner
		)
		if cfg.Metrics.Enabled {
			wrapped := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			dbExec = wrapped
			beginner = wrapped
			log.Info("Database metrics collection started")
		} else {
			dbExec = db
			beginner = &dbmetrics.Plain{DB: db}
		}

		txMgr := txmanager.NewTransactionManager(beginner)
		store = schedule.NewPgStore(bookingRepo.NewRepository(dbExec), txMgr)
		configStorage = appconfigRepo.NewRepository(dbExec)
		log.Info("Using postgres storage engine")
	}

	// Services and use cases.
	configSvc := appconfigService.New(configStorage, store, appconfigService.RealTimeProvider{}, log)
	notifier := serverchanClient.NewClient(cfg.Notifier.BaseURL, configSvc, log)
	bookingSvc := bookingsService.New(store, configSvc, notifier, log)

	submitBooking := submitBookingUC.New(store, configSvc, notifier, log)
	getAvailability := getAvailabilityUC.New(store, configSvc, log)

	// Handlers.
	createBooking := createBookingHandler.NewHandler(submitBooking, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	availability := getAvailabilityHandler.NewHandler(getAvailability, log)
	getHours := getHoursHandler.NewHandler(configSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getConfig := getConfigHandler.NewHandler(configSvc, log)
	updateConfig := updateConfigHandler.NewHandler(configSvc, log)
	getRevenue := getRevenueHandler.NewHandler(bookingSvc, log)

	// Router.
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/availability", availability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/config/hours", getHours.Handle).Methods(http.MethodGet)

	// Admin routes, guarded by a shared token.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/config", getConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/config", updateConfig.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/revenue", getRevenue.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
