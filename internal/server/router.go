package server

import (
	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-backend/internal/handlers"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/middleware"
	"github.com/notehive/notehive-backend/internal/policy"
)

type RouterConfig struct {
	Log                *logger.Logger
	AuthMiddleware     *middleware.AuthMiddleware
	AuthHandler        *handlers.AuthHandler
	StreamHandler      *handlers.StreamHandler
	SemesterHandler    *handlers.SemesterHandler
	SubjectHandler     *handlers.SubjectHandler
	NoteHandler        *handlers.NoteHandler
	FileHandler        *handlers.FileHandler
	HealthcheckHandler *handlers.HealthcheckHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.POST("/auth/register", cfg.AuthHandler.Register)
	router.POST("/auth/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.GET("/auth/me", cfg.AuthHandler.Me)

	// Streams
	protected.GET("/streams",
		middleware.RequirePolicy(policy.OpList, policy.LevelStream),
		cfg.StreamHandler.GetAll)
	protected.GET("/streams/:streamId",
		middleware.RequirePolicy(policy.OpRead, policy.LevelStream),
		cfg.StreamHandler.GetByID)
	protected.POST("/streams",
		middleware.RequirePolicy(policy.OpCreate, policy.LevelStream),
		cfg.StreamHandler.Create)
	protected.DELETE("/streams/:streamId",
		middleware.RequirePolicy(policy.OpDelete, policy.LevelStream),
		cfg.StreamHandler.Delete)

	// Semesters
	protected.GET("/streams/:streamId/semesters",
		middleware.RequirePolicy(policy.OpList, policy.LevelSemester),
		cfg.SemesterHandler.GetByStream)
	protected.GET("/semesters/:semesterId",
		middleware.RequirePolicy(policy.OpRead, policy.LevelSemester),
		cfg.SemesterHandler.GetByID)
	protected.POST("/streams/:streamId/semesters",
		middleware.RequirePolicy(policy.OpCreate, policy.LevelSemester),
		cfg.SemesterHandler.Create)
	protected.DELETE("/semesters/:semesterId",
		middleware.RequirePolicy(policy.OpDelete, policy.LevelSemester),
		cfg.SemesterHandler.Delete)

	// Subjects
	protected.GET("/semesters/:semesterId/subjects",
		middleware.RequirePolicy(policy.OpList, policy.LevelSubject),
		cfg.SubjectHandler.GetBySemester)
	protected.GET("/subjects/:subjectId",
		middleware.RequirePolicy(policy.OpRead, policy.LevelSubject),
		cfg.SubjectHandler.GetByID)
	protected.POST("/semesters/:semesterId/subjects",
		middleware.RequirePolicy(policy.OpCreate, policy.LevelSubject),
		cfg.SubjectHandler.Create)
	protected.DELETE("/subjects/:subjectId",
		middleware.RequirePolicy(policy.OpDelete, policy.LevelSubject),
		cfg.SubjectHandler.Delete)

	// Notes
	protected.GET("/subjects/:subjectId/notes",
		middleware.RequirePolicy(policy.OpList, policy.LevelNote),
		cfg.NoteHandler.GetBySubject)
	protected.GET("/notes/:noteId",
		middleware.RequirePolicy(policy.OpRead, policy.LevelNote),
		cfg.NoteHandler.GetByID)
	protected.POST("/subjects/:subjectId/notes",
		middleware.RequirePolicy(policy.OpCreate, policy.LevelNote),
		cfg.NoteHandler.Create)
	protected.DELETE("/notes/:noteId",
		middleware.RequirePolicy(policy.OpDelete, policy.LevelNote),
		cfg.NoteHandler.Delete)

	// Files
	protected.POST("/files/upload",
		middleware.RequirePolicy(policy.OpCreate, policy.LevelFile),
		cfg.FileHandler.Upload)
	protected.GET("/files/url/:fileName",
		middleware.RequirePolicy(policy.OpRead, policy.LevelFile),
		cfg.FileHandler.SignedURL)

	return router
}
