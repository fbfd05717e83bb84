package httpapi

import (
	"errors"
	"net/http"

	"blog-platform/internal/articles"
	"blog-platform/internal/auth"
	"blog-platform/internal/rbac"
	"blog-platform/internal/refreshtokens"
	"blog-platform/internal/tokens"
	"blog-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// Error kinds. Keep these stable; clients match on them.
const (
	KindInvalidRefreshToken   = "invalid_refresh_token"
	KindUnknownRefreshToken   = "unknown_refresh_token"
	KindUserNotFound          = "user_not_found"
	KindTokenMalformed        = "token_malformed"
	KindTokenSignatureInvalid = "token_signature_invalid"
	KindTokenExpired          = "token_expired"
	KindNotAuthenticated      = "not_authenticated"
	KindNotAuthorized         = "not_authorized"
	KindArticleNotFound       = "article_not_found"
	KindInvalidArgument       = "invalid_argument"
	KindEmailTaken            = "email_taken"
	KindInvalidCredentials    = "invalid_credentials"
	KindInternal              = "internal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	kind   string
}

// Order matters: refresh failures wrap their cause, and the refresh kind wins.
var errorMappings = []errorMapping{
	{tokens.ErrInvalidRefreshToken, http.StatusUnauthorized, KindInvalidRefreshToken},
	{refreshtokens.ErrUnknownRefreshToken, http.StatusUnauthorized, KindUnknownRefreshToken},
	{users.ErrUserNotFound, http.StatusUnauthorized, KindUserNotFound},
	{auth.ErrTokenExpired, http.StatusUnauthorized, KindTokenExpired},
	{auth.ErrTokenSignatureInvalid, http.StatusUnauthorized, KindTokenSignatureInvalid},
	{auth.ErrTokenMalformed, http.StatusUnauthorized, KindTokenMalformed},
	{rbac.ErrNotAuthenticated, http.StatusUnauthorized, KindNotAuthenticated},
	{rbac.ErrNotAuthorized, http.StatusForbidden, KindNotAuthorized},
	{articles.ErrArticleNotFound, http.StatusNotFound, KindArticleNotFound},
	{articles.ErrInvalidArgument, http.StatusBadRequest, KindInvalidArgument},
	{users.ErrInvalidArgument, http.StatusBadRequest, KindInvalidArgument},
	{users.ErrEmailTaken, http.StatusConflict, KindEmailTaken},
	{users.ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials},
}

// classify maps err to an HTTP status and a stable kind.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.kind
		}
	}
	return http.StatusInternalServerError, KindInternal
}

// abortWithError writes the error body. Internal errors are attached to the
// gin context for the request logger and their text is not sent to the client.
func abortWithError(c *gin.Context, err error) {
	status, kind := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: kind, Message: msg})
}

func abortInvalidBody(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: KindInvalidArgument, Message: "invalid request body: " + err.Error()})
}
