package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"conciergerie-backend/config"
	"conciergerie-backend/controllers"
	"conciergerie-backend/routes"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	logger.Info("database connection established, migrations applied")

	// Initialize services
	ledgerService := services.NewLedgerService()
	contractService := services.NewContractService(db)
	checklistService := services.NewChecklistService(db)
	missionService := services.NewMissionService(db, checklistService)
	reservationService := services.NewReservationService(db, missionService, contractService, ledgerService)
	revenueService := services.NewRevenueService(db)

	// Initialize controllers
	reservationController := controllers.NewReservationController(reservationService)
	missionController := controllers.NewMissionController(missionService)
	revenueController := controllers.NewRevenueController(revenueService)
	contractController := controllers.NewContractController(contractService)

	router := routes.SetupRouter(reservationController, missionController, revenueController, contractController)

	addr := ":" + config.AppConfig.AppPort

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
