package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/services/assignment"
)

type assignBody struct {
	UserIDs *[]string `json:"user_ids"`
}

func (h *handler) getAssignments(c *gin.Context) {
	assignments, err := h.app.AssignmentService.GetTodoAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, assignments)
}

// putAssignments replaces the full assignee set; an empty list clears it
func (h *handler) putAssignments(c *gin.Context) {
	var body assignBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	if body.UserIDs == nil {
		badRequest(c, errors.New("user_ids is required"))
		return
	}

	view, err := h.app.AssignmentService.AssignUsers(c.Request.Context(), assignment.AssignUsersRequest{
		TodoID:  c.Param("id"),
		UserIDs: *body.UserIDs,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) todosWithAssignments(c *gin.Context) {
	todos, err := h.app.AssignmentService.GetTodosWithAssignments(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, todos)
}

func (h *handler) todoWithAssignments(c *gin.Context) {
	view, err := h.app.AssignmentService.GetTodoWithAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) usersWithTodos(c *gin.Context) {
	users, err := h.app.AssignmentService.GetUsersWithTodos(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, users)
}

func (h *handler) workload(c *gin.Context) {
	workloads, err := h.app.AssignmentService.GetUserWorkloads(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, workloads)
}
