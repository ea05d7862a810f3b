package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/in"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

var (
	notifyHistoryLoadFailed = domain.NotifyError("Erro ao carregar histórico", "Erro ao carregar histórico de consultas")
	notifyExportFailed      = domain.NotifyError("Erro ao exportar", "Ocorreu um erro ao exportar o histórico. Tente novamente.")
)

type HistoryController struct {
	useCase in.HistoryUseCase
	session gin.HandlerFunc
	logger  out.LoggerPort
}

func NewHistoryController(useCase in.HistoryUseCase, session gin.HandlerFunc, logger out.LoggerPort) *HistoryController {
	return &HistoryController{
		useCase: useCase,
		session: session,
		logger:  logger.WithModule("HistoryController"),
	}
}

func (c *HistoryController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/:role/usuarios/:userId/historico")
	api.Use(c.session)
	{
		api.GET("", c.getHistory)
		api.GET("/estatisticas", c.getStats)
		api.POST("/recarregar", c.reload)
		api.GET("/exportar", c.export)
		api.GET("/:consultaId/feedback", c.openFeedback)
		api.PUT("/feedback", c.saveFeedback)
	}
}

func parseCriteria(ctx *gin.Context) (domain.FilterCriteria, domain.SortCriteria) {
	filter := domain.FilterCriteria{
		SearchTerm: ctx.Query("busca"),
	}
	if status := ctx.Query("status"); status != "" && status != "all" && status != "todos" {
		s := domain.ConsultationStatus(status)
		filter.StatusFilter = &s
	}
	// Unknown periods pass through and fail validation in the use case
	filter.Period, _ = domain.ParsePeriod(ctx.Query("periodo"))

	sort := domain.SortCriteria{
		Field: domain.SortField(ctx.Query("ordenarPor")),
		Order: domain.SortOrder(ctx.Query("ordem")),
	}
	return filter, sort
}

func (c *HistoryController) getHistory(ctx *gin.Context) {
	filter, sort := parseCriteria(ctx)
	debug, _ := strconv.ParseBool(ctx.DefaultQuery("debug", "false"))

	view, err := c.useCase.GetHistory(ctx.Request.Context(), userFrom(ctx), filter, sort, debug)
	if err != nil {
		respondError(ctx, err, notifyHistoryLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *HistoryController) getStats(ctx *gin.Context) {
	stats, err := c.useCase.GetStats(ctx.Request.Context(), userFrom(ctx))
	if err != nil {
		respondError(ctx, err, notifyHistoryLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func (c *HistoryController) reload(ctx *gin.Context) {
	report, err := c.useCase.LoadHistory(ctx.Request.Context(), userFrom(ctx), true)
	if err != nil {
		respondError(ctx, err, notifyHistoryLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"report": report})
}

func (c *HistoryController) openFeedback(ctx *gin.Context) {
	ref := domain.RecordRef{ID: ctx.Param("consultaId")}

	draft, err := c.useCase.OpenFeedback(ctx.Request.Context(), userFrom(ctx), ref)
	if err != nil {
		respondError(ctx, err, notifyHistoryLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, draft)
}

type SaveFeedbackRequest struct {
	ConsultaID string `json:"consultaId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (r SaveFeedbackRequest) draft() (domain.FeedbackDraft, error) {
	ref := domain.RecordRef{ID: r.ConsultaID, Time: r.Time}
	if r.Date != "" {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return domain.FeedbackDraft{}, err
		}
		ref.Date = date
	}
	return domain.FeedbackDraft{Record: ref, Rating: r.Rating, Comment: r.Comment}, nil
}

func (c *HistoryController) saveFeedback(ctx *gin.Context) {
	var req SaveFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ConsultaID == "" && (req.Date == "" || req.Time == "") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "consultaId or date and time are required"})
		return
	}

	draft, err := req.draft()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	result, err := c.useCase.SaveFeedback(ctx.Request.Context(), userFrom(ctx), draft)
	if err != nil {
		respondError(ctx, err, notifyHistoryLoadFailed)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *HistoryController) export(ctx *gin.Context) {
	filter, sort := parseCriteria(ctx)
	format := domain.ExportFormat(ctx.DefaultQuery("formato", string(domain.ExportFormatCSV)))

	file, err := c.useCase.ExportHistory(ctx.Request.Context(), userFrom(ctx), filter, sort, format)
	if err != nil {
		respondError(ctx, err, notifyExportFailed)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	ctx.Data(http.StatusOK, file.ContentType, file.Data)
}
