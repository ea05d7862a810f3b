package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/in"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

var (
	notifyProfileLoadFailed = domain.NotifyError("Erro ao carregar perfil", "Não foi possível carregar os dados do perfil.")
	notifyCepLookupFailed   = domain.NotifyError("Erro ao buscar CEP", "Não foi possível consultar o CEP. Preencha o endereço manualmente.")
	notifyLogoutFailed      = domain.NotifyError("Erro ao sair", "Não foi possível encerrar a sessão. Tente novamente.")
)

type ProfileController struct {
	useCase       in.ProfileUseCase
	session       gin.HandlerFunc
	photoMaxBytes int64
	logger        out.LoggerPort
}

func NewProfileController(useCase in.ProfileUseCase, session gin.HandlerFunc, photoMaxBytes int64, logger out.LoggerPort) *ProfileController {
	return &ProfileController{
		useCase:       useCase,
		session:       session,
		photoMaxBytes: photoMaxBytes,
		logger:        logger.WithModule("ProfileController"),
	}
}

func (c *ProfileController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/:role/usuarios/:userId/perfil")
	api.Use(c.session)
	{
		api.GET("", c.getProfile)
		api.PATCH("/campos", c.editFields)
		api.POST("/cep", c.lookupCep)
		api.POST("/foto", c.selectPhoto)
		api.POST("/secoes/:section/salvar", c.saveSection)
		api.POST("/descartar", c.discard)
		api.POST("/logout/confirmar", c.confirmLogout)
		api.POST("/logout/cancelar", c.cancelLogout)
	}
}

func (c *ProfileController) getProfile(ctx *gin.Context) {
	reload, _ := strconv.ParseBool(ctx.DefaultQuery("recarregar", "false"))

	result, err := c.useCase.LoadProfile(ctx.Request.Context(), userFrom(ctx), reload)
	if err != nil {
		respondError(ctx, err, notifyProfileLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

type EditFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required,min=1"`
}

func (c *ProfileController) editFields(ctx *gin.Context) {
	var req EditFieldsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := c.useCase.EditFields(ctx.Request.Context(), userFrom(ctx), req.Fields)
	if err != nil {
		respondError(ctx, err, notifyProfileLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"snapshot": form})
}

type LookupCepRequest struct {
	Cep string `json:"cep" binding:"required"`
}

func (c *ProfileController) lookupCep(ctx *gin.Context) {
	var req LookupCepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.LookupPostalCode(ctx.Request.Context(), userFrom(ctx), req.Cep)
	if err != nil {
		respondError(ctx, err, notifyCepLookupFailed)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *ProfileController) selectPhoto(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	// One byte past the limit is enough for the size check
	data, err := io.ReadAll(io.LimitReader(file, c.photoMaxBytes+1))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	form, err := c.useCase.SelectPhoto(ctx.Request.Context(), userFrom(ctx), domain.PhotoUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		respondError(ctx, err, notifyProfileLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"snapshot": form})
}

func (c *ProfileController) saveSection(ctx *gin.Context) {
	section, err := domain.ParseSection(ctx.Param("section"))
	if err != nil {
		respondError(ctx, err, notifyProfileLoadFailed)
		return
	}

	result, err := c.useCase.SaveSection(ctx.Request.Context(), userFrom(ctx), section)
	if err != nil {
		respondError(ctx, err, domain.SaveFailureNotification(section, err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *ProfileController) discard(ctx *gin.Context) {
	result, err := c.useCase.Discard(ctx.Request.Context(), userFrom(ctx))
	if err != nil {
		respondError(ctx, err, notifyProfileLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *ProfileController) confirmLogout(ctx *gin.Context) {
	if err := c.useCase.ConfirmLogout(ctx.Request.Context(), userFrom(ctx)); err != nil {
		respondError(ctx, err, notifyLogoutFailed)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"loggedOut": true})
}

func (c *ProfileController) cancelLogout(ctx *gin.Context) {
	result, err := c.useCase.CancelLogout(ctx.Request.Context(), userFrom(ctx))
	if err != nil {
		respondError(ctx, err, notifyProfileLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
