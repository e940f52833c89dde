package reporting

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	httperr "github.com/storepulse/storepulse/internal/core/errors"
)

// TriggerHandler handles POST /v1/reports.
// The run continues in the background; the response only carries its id.
func (s *Service) TriggerHandler(c *gin.Context) {
	id, err := s.tracker.Trigger()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpShuttingDownError,
			Message:   "Server is shutting down",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusAccepted, TriggerResponse{ReportID: id})
}

// StatusHandler handles GET /v1/reports/:report_id
func (s *Service) StatusHandler(c *gin.Context) {
	job, ok := s.lookup(c)
	if !ok {
		return
	}

	resp := StatusResponse{
		Status:    job.Status,
		StartedAt: job.StartedAt.Format(time.RFC3339),
	}
	switch job.Status {
	case StatusComplete:
		resp.File = job.File
		resp.FinishedAt = job.FinishedAt.Format(time.RFC3339)
	case StatusFailed:
		resp.Error = job.Error
		resp.FinishedAt = job.FinishedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadHandler handles GET /v1/reports/:report_id/file
func (s *Service) DownloadHandler(c *gin.Context) {
	job, ok := s.lookup(c)
	if !ok {
		return
	}

	switch job.Status {
	case StatusRunning:
		c.JSON(http.StatusConflict, httperr.ErrorResponse{
			ErrorType: httperr.HttpReportNotReadyError,
			Message:   "Report is still running",
		})
	case StatusFailed:
		c.JSON(http.StatusConflict, httperr.ErrorResponse{
			ErrorType: httperr.HttpReportFailedError,
			Message:   "Report generation failed",
			Details:   job.Error,
		})
	default:
		c.FileAttachment(job.File, filepath.Base(job.File))
	}
}

func (s *Service) lookup(c *gin.Context) (Job, bool) {
	var uri struct {
		ReportID string `uri:"report_id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return Job{}, false
	}

	job, err := s.tracker.Get(uri.ReportID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidReportIDError,
				Message:   "Unknown report id",
				Details:   uri.ReportID,
			})
			return Job{}, false
		}
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to look up report",
			Details:   err.Error(),
		})
		return Job{}, false
	}
	return job, true
}
