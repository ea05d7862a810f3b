package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

const (
	requestIDHeader = "X-Request-ID"
	userContextKey  = "portal.user"
)

// NewSessionMiddleware resolves the user of a /:role/usuarios/:userId route. A bearer
// token on the request is kept in storage under authToken; requests without one reuse
// the stored token for backend calls.
func NewSessionMiddleware(storage out.StoragePort, logger out.LoggerPort) gin.HandlerFunc {
	logger = logger.WithModule("SessionMiddleware")

	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(requestIDHeader, requestID)

		role, err := domain.ParseRole(ctx.Param("role"))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
		if err != nil || userID <= 0 {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		user := domain.UserKey{Role: role, UserID: userID}

		reqCtx := domain.WithRequestID(ctx.Request.Context(), requestID)

		token := bearerToken(ctx.GetHeader("Authorization"))
		if token != "" {
			if err := storage.SetItem(reqCtx, user, domain.StorageKeyAuthToken, token); err != nil {
				logger.Warn("session.token.store_failed", out.LogFields{
					"user":  user.String(),
					"error": err.Error(),
				})
			}
		} else {
			stored, ok, err := storage.GetItem(reqCtx, user, domain.StorageKeyAuthToken)
			if err != nil {
				logger.Warn("session.token.read_failed", out.LogFields{
					"user":  user.String(),
					"error": err.Error(),
				})
			}
			if ok {
				token = stored
			}
		}
		if token != "" {
			reqCtx = domain.WithAuthToken(reqCtx, token)
		}

		ctx.Request = ctx.Request.WithContext(reqCtx)
		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func userFrom(ctx *gin.Context) domain.UserKey {
	user, _ := ctx.MustGet(userContextKey).(domain.UserKey)
	return user
}
