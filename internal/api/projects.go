package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/services/project"
)

type createProjectBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type updateProjectBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (h *handler) listProjects(c *gin.Context) {
	projects, err := h.app.ProjectService.GetAllProjects(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, projects)
}

func (h *handler) projectStats(c *gin.Context) {
	stats, err := h.app.ProjectService.GetProjectStats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, stats)
}

func (h *handler) getProject(c *gin.Context) {
	p, err := h.app.ProjectService.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) createProject(c *gin.Context) {
	var body createProjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.app.ProjectService.CreateProject(c.Request.Context(), project.CreateProjectRequest(body))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) updateProject(c *gin.Context) {
	var body updateProjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.app.ProjectService.UpdateProject(c.Request.Context(), project.UpdateProjectRequest{
		ID:          c.Param("id"),
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) deleteProject(c *gin.Context) {
	if err := h.app.ProjectService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listProjectTodos(c *gin.Context) {
	todos, err := h.app.TodoService.GetTodosByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, todos)
}
