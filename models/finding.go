package models

// Severity grades a validator finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Finding is one read-only validator observation. The validator collects
// every finding instead of aborting on the first.
type Finding struct {
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`   // check group, e.g. "count_consistency"
	Message  string   `json:"message"` // human-readable detail
}
