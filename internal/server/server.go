package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamboard/internal/tracker"
)

// Server provides HTTP handlers for the team board backend.
type Server struct {
	engine  *gin.Engine
	tracker *tracker.Tracker
	logger  *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(tr *tracker.Tracker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:  router,
		tracker: tr,
		logger:  logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		teams := api.Group("/teams")
		{
			teams.GET("", s.handleListTeams)
			teams.POST("", s.handleCreateTeam)
			teams.GET(":id", s.handleDescribeTeam)
			teams.PUT(":id", s.handleUpdateTeam)
			teams.GET(":id/users", s.handleListTeamUsers)
			teams.POST(":id/users", s.handleAddTeamUsers)
			teams.POST(":id/users/remove", s.handleRemoveTeamUsers)
			teams.GET(":id/boards", s.handleListBoards)
		}

		users := api.Group("/users")
		{
			users.GET("", s.handleListUsers)
			users.POST("", s.handleCreateUser)
			users.GET(":id", s.handleDescribeUser)
			users.PUT(":id", s.handleUpdateUser)
			users.GET(":id/teams", s.handleUserTeams)
		}

		boards := api.Group("/boards")
		{
			boards.POST("", s.handleCreateBoard)
			boards.GET(":id", s.handleDescribeBoard)
			boards.POST(":id/close", s.handleCloseBoard)
			boards.POST(":id/export", s.handleExportBoard)
			boards.GET(":id/tasks", s.handleListTasks)
			boards.POST(":id/tasks", s.handleAddTask)
		}

		api.GET("/tasks/:id", s.handleDescribeTask)
		api.PUT("/tasks/:id/status", s.handleUpdateTaskStatus)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes the request body and answers 400 on malformed input.
func (s *Server) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}

// fail maps a tracker error onto its HTTP status.
func (s *Server) fail(c *gin.Context, err error) {
	s.respondError(c, statusFor(err), err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, &tracker.ValidationError{}):
		return http.StatusBadRequest
	case errors.Is(err, &tracker.NotFoundError{}):
		return http.StatusNotFound
	case errors.Is(err, &tracker.InvalidStateError{}):
		return http.StatusConflict
	case errors.Is(err, &tracker.PreconditionError{}):
		return http.StatusPreconditionFailed
	case errors.Is(err, &tracker.CapacityError{}):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(c.Request.Context(), level, "request failed",
		slog.String("path", c.FullPath()),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess writes the payload as JSON.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
