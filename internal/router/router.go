// Package router assembles the gin engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/timetable-api/api/swagger"
	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/requestid"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

type requestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Options carries the settings the router reads from configuration.
type Options struct {
	Env            string
	APIPrefix      string
	AllowedOrigins []string
	AuthEnabled    bool
}

// FromConfig derives router options from the application config.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Env:            cfg.Env,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AuthEnabled:    cfg.Auth.Enabled,
	}
}

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Courses   *handler.CourseHandler
	Faculty   *handler.FacultyHandler
	Rooms     *handler.RoomHandler
	TimeSlots *handler.TimeSlotHandler
	Timetable *handler.TimetableHandler
	Metrics   *handler.MetricsHandler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	Logger  *zap.Logger
	Metrics requestObserver
	Auth    tokenValidator
}

// New builds the engine. When auth is enabled every API route needs a valid
// bearer token and mutating routes need the ADMIN or SCHEDULER role.
func New(opts Options, h Handlers, deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if opts.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	write := []gin.HandlerFunc{}
	if opts.AuthEnabled && deps.Auth != nil {
		api.Use(middleware.JWT(deps.Auth))
		write = append(write, middleware.RequireRoles(models.RoleAdmin, models.RoleScheduler))
	} else if opts.AuthEnabled {
		deps.Logger.Warn("auth enabled without a token validator; API routes are unprotected")
	}

	mutating := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(write)+1)
		chain = append(chain, write...)
		return append(chain, fn)
	}

	courses := api.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.POST("", mutating(h.Courses.Create)...)
	courses.POST("/import", mutating(h.Courses.Import)...)
	courses.GET("/:id", h.Courses.Get)
	courses.DELETE("/:id", mutating(h.Courses.Delete)...)

	faculty := api.Group("/faculty")
	faculty.GET("", h.Faculty.List)
	faculty.POST("", mutating(h.Faculty.Create)...)
	faculty.POST("/import", mutating(h.Faculty.Import)...)
	faculty.GET("/:id", h.Faculty.Get)
	faculty.DELETE("/:id", mutating(h.Faculty.Delete)...)

	rooms := api.Group("/rooms")
	rooms.GET("", h.Rooms.List)
	rooms.POST("", mutating(h.Rooms.Create)...)
	rooms.POST("/import", mutating(h.Rooms.Import)...)
	rooms.GET("/:id", h.Rooms.Get)
	rooms.DELETE("/:id", mutating(h.Rooms.Delete)...)

	api.GET("/time-slots", h.TimeSlots.List)

	timetable := api.Group("/timetable")
	timetable.GET("", h.Timetable.Load)
	timetable.PUT("", mutating(h.Timetable.Save)...)
	timetable.DELETE("", mutating(h.Timetable.Clear)...)
	timetable.GET("/status", h.Timetable.Status)
	timetable.POST("/generate", mutating(h.Timetable.Generate)...)
	timetable.GET("/export", h.Timetable.Export)

	return r
}
