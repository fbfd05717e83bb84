package httpapi

import (
	"net/http"
	"strconv"

	"blog-platform/internal/articles"
	"blog-platform/internal/audit"
	"blog-platform/internal/rbac"
	"blog-platform/internal/tokens"
	"blog-platform/internal/users"
	"blog-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Tokens   *tokens.Service
	Users    *users.Service
	Articles *articles.Service
	// Audit is optional.
	Audit *audit.Service
}

func (h Handlers) record(c *gin.Context, e audit.Event) {
	if e.IPAddress == "" {
		e.IPAddress = c.ClientIP()
	}
	if p, err := rbac.CurrentPrincipal(c.Request.Context()); err == nil && e.ActorUserID == 0 {
		e.ActorUserID = p.UserID
		e.ActorEmail = p.Email
	}
	h.Audit.Record(c.Request.Context(), logger.FromGin(c), e)
}

// --- Tokens ---

type createAccessTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type createAccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateAccessToken exchanges a refresh token for a new access token.
func (h Handlers) CreateAccessToken(c *gin.Context) {
	var req createAccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	access, err := h.Tokens.CreateNewAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.record(c, audit.Event{Type: audit.EventTypeTokenRefreshed})
	c.JSON(http.StatusCreated, createAccessTokenResponse{AccessToken: access})
}

// Logout deletes the caller's refresh binding.
func (h Handlers) Logout(c *gin.Context) {
	p, err := rbac.CurrentPrincipal(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.Tokens.Revoke(c.Request.Context(), p.UserID); err != nil {
		abortWithError(c, err)
		return
	}
	h.record(c, audit.Event{Type: audit.EventTypeLogout})
	c.Status(http.StatusNoContent)
}

// --- Accounts ---

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (h Handlers) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{ID: u.ID, Email: u.Email})
}

// Login checks credentials and issues an access/refresh pair.
func (h Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	u, err := h.Users.CheckCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	pair, err := h.Tokens.IssuePair(c.Request.Context(), u)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.record(c, audit.Event{Type: audit.EventTypeLogin, ActorUserID: u.ID, ActorEmail: u.Email})
	c.JSON(http.StatusOK, pair)
}

func (h Handlers) Me(c *gin.Context) {
	p, err := rbac.CurrentPrincipal(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// --- Articles ---

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: KindInvalidArgument, Message: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func (h Handlers) ListArticles(c *gin.Context) {
	list, err := h.Articles.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) GetArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	a, err := h.Articles.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) CreateArticle(c *gin.Context) {
	var req articles.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	a, err := h.Articles.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h Handlers) UpdateArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	var req articles.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}
	a, err := h.Articles.Update(c.Request.Context(), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.record(c, audit.Event{Type: audit.EventTypeArticleUpdated, ArticleID: id})
	c.JSON(http.StatusOK, a)
}

func (h Handlers) DeleteArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := h.Articles.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	h.record(c, audit.Event{Type: audit.EventTypeArticleDeleted, ArticleID: id})
	c.Status(http.StatusOK)
}
