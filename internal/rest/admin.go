package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/rest/response"
)

// adminHandler exposes moderation endpoints. Routes using it must sit
// behind the admin middleware.
type adminHandler struct {
	Users domain.UserUsecase
	Posts domain.PostUsecase
}

func NewAdminHandler(users domain.UserUsecase, posts domain.PostUsecase) *adminHandler {
	return &adminHandler{
		Users: users,
		Posts: posts,
	}
}

func (h *adminHandler) ListUsers(c *gin.Context) {
	list, err := h.Users.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]*response.User, len(list))
	for i := range list {
		res[i] = response.NewUserFromDomain(&list[i])
	}
	c.JSON(http.StatusOK, res)
}

func (h *adminHandler) DeleteUser(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	if err := h.Users.Delete(c.Request.Context(), int64(idP)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePost removes any post regardless of ownership
func (h *adminHandler) DeletePost(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	if err := h.Posts.ForceDelete(c.Request.Context(), int64(idP)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
