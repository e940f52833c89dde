package reporting

// TriggerResponse is returned when a report run is accepted.
type TriggerResponse struct {
	ReportID string `json:"report_id"`
}

// StatusResponse reports a job's state. File is set once complete, Error once failed.
type StatusResponse struct {
	Status     Status `json:"status"`
	File       string `json:"file,omitempty"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}
