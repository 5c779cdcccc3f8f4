// Package httpapi exposes the service over HTTP using gin. It owns the
// route table, the token-kind middleware, and the mapping from sentinel
// errors to response status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmirnov87/taskvault/internal/logging"
	"github.com/dsmirnov87/taskvault/internal/server/auth"
	"github.com/dsmirnov87/taskvault/internal/server/models"
	"github.com/dsmirnov87/taskvault/internal/server/services"
)

// UserService is the slice of the user service the HTTP layer consumes.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	UpdateEmail(ctx context.Context, username, email string) error
	Refresh(ctx context.Context, username string) (string, error)
	Logout(ctx context.Context, jti string) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TaskService is the slice of the task service the HTTP layer consumes.
type TaskService interface {
	Create(ctx context.Context, userID int64, heading, description string) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListForOwner(ctx context.Context, userID int64) ([]*models.Task, error)
	Update(ctx context.Context, id int64, upd services.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// Server wires the route table to the services and runs the HTTP listener.
type Server struct {
	address string
	logger  logging.Logger
	tokens  *auth.TokenManager
	users   UserService
	tasks   TaskService
	router  *gin.Engine
}

func NewServer(address string, logger logging.Logger, tokens *auth.TokenManager, us UserService, ts TaskService) *Server {
	s := &Server{
		address: address,
		logger:  logger.With("module", "httpapi"),
		tokens:  tokens,
		users:   us,
		tasks:   ts,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.POST("/user/register", s.handleRegister)
	r.POST("/user/login", s.handleLogin)
	r.POST("/user/update", s.requireToken(auth.KindAccess), s.handleUpdateUser)
	r.POST("/user/access/logout", s.requireToken(auth.KindAccess), s.handleLogoutAccess)
	r.POST("/user/refresh/logout", s.requireToken(auth.KindRefresh), s.handleLogoutRefresh)
	r.POST("/user/token/refresh", s.requireToken(auth.KindRefresh), s.handleRefresh)

	tasks := r.Group("/tasks", s.requireToken(auth.KindAccess))
	tasks.POST("/create", s.handleCreateTask)
	tasks.GET("", s.handleListTasks)
	tasks.GET("/:id", s.handleGetTask)
	tasks.POST("/:id/update", s.handleUpdateTask)
	tasks.POST("/:id/delete", s.handleDeleteTask)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
