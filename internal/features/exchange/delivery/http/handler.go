package http

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/errors"
	"secret-santa-backend/internal/common/middleware"
	"secret-santa-backend/internal/features/exchange/models"
	"secret-santa-backend/internal/features/exchange/service"
	"secret-santa-backend/internal/features/pairing"
)

type ExchangeHandler struct {
	service service.DrawService
	wrap    func(gin.HandlerFunc) gin.HandlerFunc
}

func NewExchangeHandler(service service.DrawService, logger zerolog.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		service: service,
		wrap:    middleware.HandleErrorWrapper(logger),
	}
}

// RegisterRoutes mounts /exchanges. auth authenticates every route, admin
// guards draws and listings, and self limits a giver lookup to that giver.
func (h *ExchangeHandler) RegisterRoutes(router *gin.RouterGroup, auth, admin, self gin.HandlerFunc) {
	exchanges := router.Group("/exchanges", auth)
	{
		exchanges.GET("/:id/assignments/:giverId", self, h.wrap(h.GetAssignment))
	}

	adminExchanges := router.Group("/exchanges", auth, admin)
	{
		adminExchanges.GET("", h.wrap(h.ListExchanges))
		adminExchanges.POST("/:id/draw", h.wrap(h.Draw))
		adminExchanges.GET("/:id/assignments", h.wrap(h.ListAssignments))
		adminExchanges.DELETE("/:id/assignments", h.wrap(h.Reset))
	}
}

// toAppError keeps pairing refusals apart from storage failures so the
// caller knows whether retrying the draw can help.
func toAppError(err error, exchangeID string) *errors.AppError {
	var notEnough *service.NotEnoughParticipantsError
	switch {
	case stderrors.Is(err, service.ErrInvalidExchange):
		return errors.Wrap(err, errors.ErrCodeInvalidExchange, "Invalid exchange id").WithDetail("exchange_id", exchangeID)
	case stderrors.As(err, &notEnough):
		return errors.NewNotEnoughParticipantsError(exchangeID, notEnough.Count, notEnough.Required)
	case stderrors.Is(err, pairing.ErrDuplicateParticipant):
		return errors.Wrap(err, errors.ErrCodeDuplicateParticipant, "Participant list contains a duplicate id").WithDetail("exchange_id", exchangeID)
	case stderrors.Is(err, service.ErrPairingFailed):
		return errors.Wrap(err, errors.ErrCodePairingFailed, "Pairing failed").WithDetail("exchange_id", exchangeID)
	case stderrors.Is(err, service.ErrDrawSaveFailed):
		return errors.NewDrawSaveError(exchangeID, err)
	case stderrors.Is(err, service.ErrAssignmentNotFound):
		return errors.New(errors.ErrCodeAssignmentNotFound, "Assignment not found").WithDetail("exchange_id", exchangeID)
	default:
		return errors.NewStorageError("exchange", err).WithDetail("exchange_id", exchangeID)
	}
}

// @Summary Draw assignments
// @Description Pair every registered participant and replace the exchange's assignments (admin only)
// @Tags exchanges
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Exchange ID" default(global-exchange)
// @Success 200 {object} models.DrawResult "Draw result"
// @Failure 400 {object} middleware.ErrorResponse "Invalid exchange id"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 409 {object} middleware.ErrorResponse "Duplicate participant"
// @Failure 422 {object} middleware.ErrorResponse "Not enough participants"
// @Failure 503 {object} middleware.ErrorResponse "Draw could not be saved; retry"
// @Router /exchanges/{id}/draw [post]
func (h *ExchangeHandler) Draw(c *gin.Context) {
	id := c.Param("id")
	result, err := h.service.Draw(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Reset assignments
// @Description Delete every assignment of the exchange (admin only)
// @Tags exchanges
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Exchange ID"
// @Success 200 {object} models.ResetResponse "Removed count"
// @Failure 400 {object} middleware.ErrorResponse "Invalid exchange id"
// @Router /exchanges/{id}/assignments [delete]
func (h *ExchangeHandler) Reset(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.service.Reset(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.JSON(http.StatusOK, models.ResetResponse{ExchangeID: id, Removed: removed})
}

// @Summary List assignments
// @Tags exchanges
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Exchange ID"
// @Success 200 {object} models.AssignmentsResponse "Active assignments"
// @Failure 400 {object} middleware.ErrorResponse "Invalid exchange id"
// @Router /exchanges/{id}/assignments [get]
func (h *ExchangeHandler) ListAssignments(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.ListAssignments(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get my assignment
// @Description Who the giver presents a gift to. Visible to the giver and to admins.
// @Tags exchanges
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Exchange ID"
// @Param giverId path string true "Giver ID"
// @Success 200 {object} models.AssignmentResponse "Assignment"
// @Failure 403 {object} middleware.ErrorResponse "Not the giver"
// @Failure 404 {object} middleware.ErrorResponse "No assignment for this giver"
// @Router /exchanges/{id}/assignments/{giverId} [get]
func (h *ExchangeHandler) GetAssignment(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.GetAssignment(c.Request.Context(), id, c.Param("giverId"))
	if err != nil {
		_ = c.Error(toAppError(err, id).WithDetail("giver_id", c.Param("giverId")))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List exchanges
// @Description Exchanges that currently hold an assignment set (admin only)
// @Tags exchanges
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} models.ExchangeSummary "Exchanges"
// @Router /exchanges [get]
func (h *ExchangeHandler) ListExchanges(c *gin.Context) {
	list, err := h.service.ListExchanges(c.Request.Context())
	if err != nil {
		_ = c.Error(toAppError(err, ""))
		return
	}
	c.JSON(http.StatusOK, list)
}
