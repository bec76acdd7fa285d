package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/threadboard/threadboard/internal/domain"
	"github.com/threadboard/threadboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth     service.AuthService
	posts    service.PostService
	comments service.CommentService
	logger   *logrus.Logger
}

func NewHandler(auth service.AuthService, posts service.PostService, comments service.CommentService, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:     auth,
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	posts := api.Group("/posts")
	posts.Use(RequireAuth(h.auth))
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/:post_id", h.getPost)
		posts.PUT("/:post_id", h.updatePost)
		posts.DELETE("/:post_id", h.deletePost)
		posts.POST("/:post_id/comments", h.createComment)
		posts.GET("/:post_id/comments", h.listPostComments)
	}

	comments := api.Group("/comments")
	comments.Use(RequireAuth(h.auth))
	{
		comments.PUT("/:comment_id", h.updateComment)
		comments.DELETE("/:comment_id", h.deleteComment)
		comments.GET("/:comment_id/replies", h.listReplies)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": domain.ErrEmailTaken.Error()})
			return
		}
		h.internalError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrInvalidCredentials.Error()})
			return
		}
		h.internalError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) createPost(c *gin.Context) {
	authorID, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), req.Title, req.Content, authorID)
	if err != nil {
		h.internalError(c, "create post", err)
		return
	}

	c.JSON(http.StatusCreated, postToResponse(post))
}

func (h *Handler) listPosts(c *gin.Context) {
	page, perPage := pagination(c)

	posts, err := h.posts.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.internalError(c, "list posts", err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(&posts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPost(c *gin.Context) {
	id, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
			return
		}
		h.internalError(c, "get post", err)
		return
	}

	c.JSON(http.StatusOK, postToResponse(post))
}

func (h *Handler) updatePost(c *gin.Context) {
	authorID, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	id, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), id, req.Title, req.Content, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
			return
		}
		h.internalError(c, "update post", err)
		return
	}

	c.JSON(http.StatusOK, postToResponse(post))
}

func (h *Handler) deletePost(c *gin.Context) {
	authorID, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	id, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}

	deleted, err := h.posts.Delete(c.Request.Context(), id, authorID)
	if err != nil {
		h.internalError(c, "delete post", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type createCommentRequest struct {
	Content  string     `json:"content" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) createComment(c *gin.Context) {
	authorID, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	postID, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), postID, req.Content, req.ParentID, authorID)
	if err != nil {
		h.internalError(c, "create comment", err)
		return
	}

	c.JSON(http.StatusCreated, commentToResponse(comment))
}

func (h *Handler) listPostComments(c *gin.Context) {
	postID, ok := pathUUID(c, "post_id")
	if !ok {
		return
	}
	page, perPage := pagination(c)

	comments, err := h.comments.ListByPost(c.Request.Context(), postID, page, perPage)
	if err != nil {
		h.internalError(c, "list comments", err)
		return
	}

	c.JSON(http.StatusOK, commentsToResponse(comments))
}

func (h *Handler) listReplies(c *gin.Context) {
	commentID, ok := pathUUID(c, "comment_id")
	if !ok {
		return
	}
	page, perPage := pagination(c)

	replies, err := h.comments.ListReplies(c.Request.Context(), commentID, page, perPage)
	if err != nil {
		h.internalError(c, "list replies", err)
		return
	}

	c.JSON(http.StatusOK, commentsToResponse(replies))
}

func (h *Handler) updateComment(c *gin.Context) {
	authorID, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	id, ok := pathUUID(c, "comment_id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), id, req.Content, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
			return
		}
		h.internalError(c, "update comment", err)
		return
	}

	c.JSON(http.StatusOK, commentToResponse(comment))
}

func (h *Handler) deleteComment(c *gin.Context) {
	authorID, ok := CurrentUser(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	id, ok := pathUUID(c, "comment_id")
	if !ok {
		return
	}

	deleted, err := h.comments.Delete(c.Request.Context(), id, authorID)
	if err != nil {
		h.internalError(c, "delete comment", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// pagination reads the optional page/per_page query params. Values that are
// absent or non-numeric fall back to the defaults; out-of-range numbers are
// passed through unclamped, matching the store's offset arithmetic.
func pagination(c *gin.Context) (page, perPage int64) {
	page = queryInt64(c, "page", 1)
	perPage = queryInt64(c, "per_page", 10)
	return page, perPage
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func pathUUID(c *gin.Context, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(key))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return uuid.UUID{}, false
	}
	return id, true
}

// internalError hides store detail from the response body; the cause only
// reaches the log.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	if h.logger != nil {
		h.logger.WithError(err).Warnf("%s failed", op)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PostResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CommentResponse struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	PostID    string  `json:"post_id"`
	AuthorID  string  `json:"author_id"`
	ParentID  *string `json:"parent_id,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID.String(),
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
}

func commentToResponse(comment *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID.String(),
		Content:   comment.Content,
		PostID:    comment.PostID.String(),
		AuthorID:  comment.AuthorID.String(),
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
	if comment.ParentID != nil {
		v := comment.ParentID.String()
		resp.ParentID = &v
	}
	return resp
}

func commentsToResponse(comments []domain.Comment) []CommentResponse {
	resp := make([]CommentResponse, len(comments))
	for i := range comments {
		resp[i] = commentToResponse(&comments[i])
	}
	return resp
}
