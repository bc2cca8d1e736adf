package main

import (
	"fmt"
	"os"
	"time"

	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/db"
	"github.com/notehive/notehive-backend/internal/handlers"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/middleware"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/server"
	"github.com/notehive/notehive-backend/internal/services"
	"github.com/notehive/notehive-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	hashPasswords := utils.GetEnvAsBool("AUTH_HASH_PASSWORDS", false, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	streamRepo := repos.NewStreamRepo(thePG, log)
	semesterRepo := repos.NewSemesterRepo(thePG, log)
	subjectRepo := repos.NewSubjectRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)

	// Bootstrap identities
	bootstrapIdentities := config.LoadBootstrapIdentities(log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	fileService := services.NewFileService(log, bucketService)
	authService := services.NewAuthService(thePG, log, userRepo, bootstrapIdentities, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, hashPasswords)
	noteService := services.NewNoteService(thePG, log, noteRepo, subjectRepo, semesterRepo, streamRepo, bucketService, fileService)
	subjectService := services.NewSubjectService(thePG, log, subjectRepo, semesterRepo, noteService, fileService)
	semesterService := services.NewSemesterService(thePG, log, semesterRepo, streamRepo, subjectService, fileService)
	streamService := services.NewStreamService(thePG, log, streamRepo, semesterService, fileService)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	streamHandler := handlers.NewStreamHandler(streamService)
	semesterHandler := handlers.NewSemesterHandler(semesterService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	noteHandler := handlers.NewNoteHandler(noteService)
	fileHandler := handlers.NewFileHandler(fileService)
	healthcheckHandler := handlers.NewHealthcheckHandler()

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                log,
		AuthMiddleware:     authMiddleware,
		AuthHandler:        authHandler,
		StreamHandler:      streamHandler,
		SemesterHandler:    semesterHandler,
		SubjectHandler:     subjectHandler,
		NoteHandler:        noteHandler,
		FileHandler:        fileHandler,
		HealthcheckHandler: healthcheckHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
