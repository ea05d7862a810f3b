package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

// respondError maps the error taxonomy to a status code. Network failures carry the
// toast the page shows for that operation.
func respondError(ctx *gin.Context, err error, onNetwork domain.Notification) {
	if vErr, ok := domain.IsValidation(err); ok {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  vErr.Message,
			"fields": vErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrSaveInFlight):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, domain.ErrUnsupportedExport):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := domain.IsNetwork(err); ok {
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":        err.Error(),
			"notification": onNetwork,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
