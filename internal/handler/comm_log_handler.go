package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"smilescript/backend/internal/model"
	"smilescript/backend/internal/repository"
	"smilescript/backend/internal/service"
)

type CommLogHandler struct {
	service service.CommLogService
}

type submitRequest struct {
	Transcript string `json:"transcript"`
}

type commLogResponse struct {
	ID            string `json:"id"`
	Transcript    string `json:"transcript"`
	Summary       string `json:"summary"`
	SummarySource string `json:"summarySource"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type rerunAllResponse struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

func NewCommLogHandler(service service.CommLogService) *CommLogHandler {
	return &CommLogHandler{service: service}
}

func (h *CommLogHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/logs", h.Submit)
	g.GET("/logs", h.List)
	g.GET("/logs/:id", h.Get)
	g.POST("/logs/:id/rerun", h.Rerun)
	g.POST("/logs/rerun", h.RerunAll)
}

// Submit summarizes and stores a new call transcript.
// @Summary Submit a call transcript
// @Description Summarize a dental call transcript and persist it as a communication log
// @Tags logs
// @Accept json
// @Produce json
// @Param request body submitRequest true "Transcript submission"
// @Success 201 {object} commLogResponse
// @Failure 400 {object} errorResponse
// @Router /logs [post]
func (h *CommLogHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	log, err := h.service.Submit(c.Request().Context(), req.Transcript)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCommLogResponse(log))
}

// List returns all communication logs.
// @Summary List communication logs
// @Description Get all communication logs ordered by creation time
// @Tags logs
// @Produce json
// @Param order query string false "Sort order" Enums(asc, desc)
// @Success 200 {array} commLogResponse
// @Router /logs [get]
func (h *CommLogHandler) List(c echo.Context) error {
	order := repository.OrderCreatedAsc
	if c.QueryParam("order") == "desc" {
		order = repository.OrderCreatedDesc
	}
	logs, err := h.service.List(c.Request().Context(), order)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]commLogResponse, 0, len(logs))
	for _, log := range logs {
		response = append(response, toCommLogResponse(log))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns a single communication log.
// @Summary Get a communication log
// @Tags logs
// @Produce json
// @Param id path int true "Log ID"
// @Success 200 {object} commLogResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id} [get]
func (h *CommLogHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid log ID"})
	}
	log, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCommLogResponse(log))
}

// Rerun regenerates the summary of an existing log.
// @Summary Regenerate a summary
// @Description Re-summarize the stored transcript of an existing log. The transcript and creation time are preserved.
// @Tags logs
// @Produce json
// @Param id path int true "Log ID"
// @Success 200 {object} commLogResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id}/rerun [post]
func (h *CommLogHandler) Rerun(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid log ID"})
	}
	log, err := h.service.Rerun(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCommLogResponse(log))
}

// RerunAll regenerates every stored summary.
// @Summary Regenerate all summaries
// @Description Re-summarize every stored transcript, e.g. after switching providers
// @Tags logs
// @Produce json
// @Success 200 {object} rerunAllResponse
// @Router /logs/rerun [post]
func (h *CommLogHandler) RerunAll(c echo.Context) error {
	result, err := h.service.RerunAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rerunAllResponse{
		Processed: result.Processed,
		Failed:    result.Failed,
	})
}

func toCommLogResponse(log model.CommLog) commLogResponse {
	return commLogResponse{
		ID:            strconv.FormatInt(log.ID, 10),
		Transcript:    log.Transcript,
		Summary:       log.Summary,
		SummarySource: log.SummarySource,
		CreatedAt:     log.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     log.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
