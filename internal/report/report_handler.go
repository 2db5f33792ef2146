package report

import (
	"fmt"
	"net/http"
	"time"

	"leave-portal/internal/shared/apperror"
	"leave-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) query(c *gin.Context) ([]LeaveReportRow, bool) {
	actorID, err := uuid.Parse(c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return nil, false
	}

	var q LeaveReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return nil, false
	}

	rows, err := h.service.LeaveReport(c.Request.Context(), actorID, c.GetString("role"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return nil, false
	}
	return rows, true
}

func (h *Handler) Leaves(c *gin.Context) {
	rows, ok := h.query(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) LeavesCSV(c *gin.Context) {
	rows, ok := h.query(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("leave-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := h.service.WriteCSV(c.Writer, rows); err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
	}
}
