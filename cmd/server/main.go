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
	_ "time/tzdata"

	"github.com/Dias221467/Mindful_Companion/internal/config"
	"github.com/Dias221467/Mindful_Companion/internal/database"
	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/handlers"
	"github.com/Dias221467/Mindful_Companion/internal/jobs"
	"github.com/Dias221467/Mindful_Companion/internal/repository"
	cron "github.com/Dias221467/Mindful_Companion/internal/scheduler"
	"github.com/Dias221467/Mindful_Companion/internal/services"
	"github.com/Dias221467/Mindful_Companion/pkg/email"
	"github.com/Dias221467/Mindful_Companion/pkg/logger"
	"github.com/Dias221467/Mindful_Companion/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		logger.Log.WithError(err).Error("Failed to ensure indexes")
	}
	cancel()

	loc := cfg.Location()

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	// --- Clients ---
	mailer := email.NewSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPSender,
		Password: cfg.SMTPPassword,
	})
	gemini := genai.NewClient(genai.Config{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if cfg.GeminiAPIKey == "" {
		logger.Log.Warn("GEMINI_API_KEY not set, suggestions will fail and the default affirmation is served")
	}

	// --- Services ---
	userService := services.NewUserService(userRepo, mailer, services.UserServiceConfig{
		PublicBaseURL:            cfg.PublicBaseURL,
		RequireEmailVerification: cfg.RequireEmailVerification,
	})
	moodService := services.NewMoodService(moodRepo, loc)
	journalService := services.NewJournalService(journalRepo)
	suggestionService := services.NewSuggestionService(gemini, moodRepo, userRepo)
	affirmationService := services.NewAffirmationService(gemini, loc, nil)
	dashboardService := services.NewDashboardService(userRepo, moodRepo, journalRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	moodHandler := handlers.NewMoodHandler(moodService)
	journalHandler := handlers.NewJournalHandler(journalService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	homeHandler := handlers.NewHomeHandler(dashboardService, affirmationService, loc, func(ctx context.Context) error {
		return db.Client().Ping(ctx, readpref.Primary())
	})

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware, middleware.MetricsMiddleware)

	// Public routes
	router.HandleFunc("/health", homeHandler.HealthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/users/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/users/reset-password", userHandler.ResetPasswordHandler).Methods("POST")

	// Everything below requires a bearer token
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(middleware.UpdateLastActiveMiddleware(userService))

	protected.HandleFunc("/users/me", userHandler.GetMeHandler).Methods("GET")
	protected.HandleFunc("/users/me", userHandler.UpdateMeHandler).Methods("PATCH")
	protected.HandleFunc("/users/avatars", userHandler.AvatarsHandler).Methods("GET")

	protected.HandleFunc("/moods", moodHandler.CreateCheckInHandler).Methods("POST")
	protected.HandleFunc("/moods", moodHandler.ListCheckInsHandler).Methods("GET")
	protected.HandleFunc("/moods/latest", moodHandler.LatestCheckInHandler).Methods("GET")
	protected.HandleFunc("/moods/insights", moodHandler.InsightsHandler).Methods("GET")
	protected.HandleFunc("/moods/{id}", moodHandler.UpdateCheckInHandler).Methods("PATCH")
	protected.HandleFunc("/moods/{id}", moodHandler.DeleteCheckInHandler).Methods("DELETE")

	protected.HandleFunc("/journal", journalHandler.CreateEntryHandler).Methods("POST")
	protected.HandleFunc("/journal", journalHandler.ListEntriesHandler).Methods("GET")
	protected.HandleFunc("/journal/{id}", journalHandler.UpdateEntryHandler).Methods("PATCH")
	protected.HandleFunc("/journal/{id}", journalHandler.DeleteEntryHandler).Methods("DELETE")

	protected.HandleFunc("/suggestions/prompt", suggestionHandler.JournalPromptHandler).Methods("POST")
	protected.HandleFunc("/suggestions/activities", suggestionHandler.ActivitiesHandler).Methods("POST")
	protected.HandleFunc("/suggestions/activities/latest", suggestionHandler.LatestActivitiesHandler).Methods("GET")
	protected.HandleFunc("/suggestions/activity-details", suggestionHandler.ActivityDetailsHandler).Methods("POST")

	protected.HandleFunc("/affirmation", homeHandler.AffirmationHandler).Methods("GET")
	protected.HandleFunc("/dashboard", homeHandler.DashboardHandler).Methods("GET")

	// --- Cron ---
	if cfg.EnableCron {
		reminder := jobs.NewCheckInReminder(userRepo, mailer)
		scheduler, err := cron.StartCronJobs(loc, affirmationService, reminder)
		if err != nil {
			log.Fatalf("Cron setup error: %v", err)
		}
		defer scheduler.Stop()
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Failed to disconnect from MongoDB")
	}
}
