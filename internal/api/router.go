// Package api serves tandem over HTTP/JSON
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/app"
	"github.com/thenoetrevino/tandem/internal/config"
	"golang.org/x/time/rate"
)

// shutdownTimeout bounds how long in-flight requests get after ctx is cancelled
const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine with every route and middleware
func NewRouter(a *app.App, cfg config.ServerConfig) *gin.Engine {
	logger := a.Logger()

	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger), CORS(cfg.AllowOrigins))
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
		}
		r.Use(RateLimiter(rate.Limit(cfg.RateLimit), burst))
	}

	h := &handler{app: a}

	api := r.Group("/api")
	{
		api.GET("/health", h.health)

		projects := api.Group("/projects")
		{
			projects.GET("", h.listProjects)
			projects.POST("", h.createProject)
			projects.GET("/stats", h.projectStats)
			projects.GET("/:id", h.getProject)
			projects.PATCH("/:id", h.updateProject)
			projects.DELETE("/:id", h.deleteProject)
			projects.GET("/:id/todos", h.listProjectTodos)
		}

		users := api.Group("/users")
		{
			users.GET("", h.listUsers)
			users.POST("", h.createUser)
			users.GET("/:id", h.getUser)
			users.PATCH("/:id", h.updateUser)
			users.DELETE("/:id", h.deleteUser)
		}

		todos := api.Group("/todos")
		{
			todos.GET("", h.listTodos)
			todos.POST("", h.createTodo)
			todos.GET("/:id", h.getTodo)
			todos.PATCH("/:id", h.updateTodo)
			todos.DELETE("/:id", h.deleteTodo)
			todos.GET("/:id/assignments", h.getAssignments)
			todos.PUT("/:id/assignments", h.putAssignments)
		}

		views := api.Group("/views")
		{
			views.GET("/todos", h.todosWithAssignments)
			views.GET("/todos/:id", h.todoWithAssignments)
			views.GET("/users", h.usersWithTodos)
			views.GET("/workload", h.workload)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorBody{Error: ErrorDetail{Code: "NOT_FOUND", Message: "route not found"}})
	})

	return r
}

// Serve runs the API on cfg.Addr until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, a *app.App, cfg config.ServerConfig) error {
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(a, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("api shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
