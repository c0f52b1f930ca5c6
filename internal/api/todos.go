package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/services/todo"
)

type createTodoBody struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// updateTodoBody fields left out (or null) are unchanged; "" clears
// description and due_date.
type updateTodoBody struct {
	ProjectID   *string `json:"project_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (h *handler) listTodos(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		todos []*models.Todo
		err   error
	)
	if projectID := c.Query("project_id"); projectID != "" {
		todos, err = h.app.TodoService.GetTodosByProject(ctx, projectID)
	} else {
		todos, err = h.app.TodoService.GetAllTodos(ctx)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, todos)
}

func (h *handler) getTodo(c *gin.Context) {
	t, err := h.app.TodoService.GetTodoByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) createTodo(c *gin.Context) {
	var body createTodoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.app.TodoService.CreateTodo(c.Request.Context(), todo.CreateTodoRequest(body))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handler) updateTodo(c *gin.Context) {
	var body updateTodoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.app.TodoService.UpdateTodo(c.Request.Context(), todo.UpdateTodoRequest{
		ID:          c.Param("id"),
		ProjectID:   body.ProjectID,
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
		Priority:    body.Priority,
		Status:      body.Status,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) deleteTodo(c *gin.Context) {
	if err := h.app.TodoService.DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
