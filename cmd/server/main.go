package main

import (
	"alcyxob/training-app/internal/api"
	"alcyxob/training-app/internal/clock"
	"alcyxob/training-app/internal/config"
	"alcyxob/training-app/internal/repository/mongo"
	"alcyxob/training-app/internal/service"
	"alcyxob/training-app/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting training app server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}
	logger.Info("configuration loaded", zap.String("address", cfg.Server.Address))

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTraineeIndexes(ctx, appDB.Collection("trainees"))
		mongo.EnsureCourseIndexes(ctx, appDB.Collection("courses"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("training_sessions"))
		mongo.EnsureCheckInIndexes(ctx, appDB.Collection("check_ins"))
		mongo.EnsureCertificateIndexes(ctx, appDB.Collection("certificates"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	traineeRepo := mongo.NewMongoTraineeRepository(appDB)
	courseRepo := mongo.NewMongoCourseRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	checkInRepo := mongo.NewMongoCheckInRepository(appDB)
	certificateRepo := mongo.NewMongoCertificateRepository(appDB)

	// --- Initialize Services ---
	clk := clock.System()
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	traineeService := service.NewTraineeService(traineeRepo, courseRepo, sessionRepo, checkInRepo)
	pointsService := service.NewPointsService(traineeRepo, checkInRepo, courseRepo, sessionRepo, cfg.Points.FlagPenalty, clk)
	ledgerService := service.NewLedgerService(courseRepo, sessionRepo, traineeRepo, pointsService, clk)
	certificateService := service.NewCertificateService(courseRepo, certificateRepo, fileStorage)

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, logger, clk, cfg.Points.CheckInAward,
		authService, traineeService, ledgerService, pointsService, certificateService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
