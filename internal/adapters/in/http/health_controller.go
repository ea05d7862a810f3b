package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)
}

func (c *HealthController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
		"env":     c.cfg.App.Env,
	})
}
