package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/rest/request"
	"github.com/nansabi/BLOG-WEBSITE/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageNum = 10
	PageMinNum     = 5
	PageMaxNum     = 30

	DefaultRankLimit = 10
	RankMin          = 5
	RankMax          = 30

	maxImageSize = 8 << 20
)

// PostHandler represent the httphandler for posts
type PostHandler struct {
	Service domain.PostUsecase
}

func NewPostHandler(svc domain.PostUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

// GetByID will get post by given id
func (h *PostHandler) GetByID(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)
	ctx := c.Request.Context()

	post, err := h.Service.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// Fetch will fetch the posts based on given params
func (h *PostHandler) Fetch(c *gin.Context) {
	numS := c.Query("num")
	num, err := strconv.Atoi(numS)
	if err != nil || num < PageMinNum || num > PageMaxNum {
		num = DefaultPageNum
	}

	cursor := c.Query("cursor")
	keyword := c.Query("keyword")
	ctx := c.Request.Context()

	list, nextCursor, err := h.Service.Fetch(ctx, cursor, int64(num), keyword)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	res := make([]response.Post, len(list))
	for i := range list {
		res[i] = response.NewPostFromDomain(&list[i])
	}
	c.Header(`X-cursor`, nextCursor)
	c.JSON(http.StatusOK, res)
}

// Store will store the post by given multipart form, with an optional image
func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	post := req.ToDomain()
	post.User.ID = userID.(int64)

	var upload *domain.ImageUpload
	fileHeader, err := c.FormFile("image")
	if err == nil {
		if fileHeader.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()
		upload = &domain.ImageUpload{
			Reader:   file,
			Filename: fileHeader.Filename,
		}
	}

	ctx := c.Request.Context()
	if err := h.Service.Store(ctx, &post, upload); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

// Update will modify the post title and content
func (h *PostHandler) Update(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)

	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	post := req.ToDomain()
	post.ID = id

	ctx := c.Request.Context()
	if err := h.Service.Update(ctx, &post, userID.(int64)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// Delete will delete the post by given param
func (h *PostHandler) Delete(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id, userID.(int64)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Like toggles the caller's membership in the post's likes set
func (h *PostHandler) Like(c *gin.Context) {
	h.toggle(c, h.Service.ToggleLike)
}

// Unlike toggles the caller's membership in the post's unlikes set
func (h *PostHandler) Unlike(c *gin.Context) {
	h.toggle(c, h.Service.ToggleUnlike)
}

func (h *PostHandler) toggle(c *gin.Context, fn func(ctx context.Context, postID, userID int64) (domain.EngagementResult, error)) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	pid := int64(idP)

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(int64)

	result, err := fn(c.Request.Context(), pid, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// FetchTrending returns the highest-scored posts
func (h *PostHandler) FetchTrending(c *gin.Context) {
	limitS := c.Query("limit")
	limit, err := strconv.ParseInt(limitS, 10, 64)
	if err != nil || limit < RankMin || limit > RankMax {
		limit = DefaultRankLimit
	}

	list, err := h.Service.FetchTrending(c.Request.Context(), limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(list))
	for i := range list {
		res[i] = response.NewPostFromDomain(&list[i])
	}
	c.JSON(http.StatusOK, res)
}

// getStatusCode maps domain errors to HTTP status codes
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case errors.Is(err, domain.ErrInternalServerError):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
