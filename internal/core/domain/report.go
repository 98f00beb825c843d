package domain

// ComplianceReport is produced out-of-band by the analysis pipeline and is
// read-only here. Fields are passed through to the caller unmodified.
type ComplianceReport struct {
	Severity          string   `json:"severity"`
	IssuesFound       []string `json:"issues_found"`
	Summary           string   `json:"summary"`
	Model             string   `json:"model,omitempty"`
	ProcessedAt       string   `json:"processed_at,omitempty"`
	RequestID         string   `json:"request_id,omitempty"`
	GuardrailsEnabled bool     `json:"guardrails_enabled,omitempty"`
}
