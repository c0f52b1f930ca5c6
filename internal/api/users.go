package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/tandem/internal/services/user"
)

type createUserBody struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type updateUserBody struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

func (h *handler) listUsers(c *gin.Context) {
	users, err := h.app.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	list(c, users)
}

func (h *handler) getUser(c *gin.Context) {
	u, err := h.app.UserService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) createUser(c *gin.Context) {
	var body createUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.app.UserService.CreateUser(c.Request.Context(), user.CreateUserRequest(body))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *handler) updateUser(c *gin.Context) {
	var body updateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.app.UserService.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:        c.Param("id"),
		Name:      body.Name,
		Email:     body.Email,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) deleteUser(c *gin.Context) {
	if err := h.app.UserService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
