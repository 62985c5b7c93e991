package diagnostics

import "time"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is an operator-facing event pushed to /diag listeners.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
	At       time.Time      `json:"at"`
}

// New stamps a diagnostic with the current time.
func New(sev Severity, code, summary string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Summary: summary, At: time.Now()}
}

// With returns d with key=val added to Evidence.
func (d Diagnostic) With(key string, val any) Diagnostic {
	ev := make(map[string]any, len(d.Evidence)+1)
	for k, v := range d.Evidence {
		ev[k] = v
	}
	ev[key] = val
	d.Evidence = ev
	return d
}
