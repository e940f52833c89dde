package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidRequestError  = "invalid_request"
	HttpInvalidReportIDError = "invalid_report_id"
	HttpReportNotReadyError  = "report_not_ready"
	HttpReportFailedError    = "report_failed"
	HttpShuttingDownError    = "shutting_down"
)

// ErrorResponse is the error response body for every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
