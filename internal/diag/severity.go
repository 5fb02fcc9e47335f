package diag

// Severity orders findings: formatting issues are warnings, unparsable text
// is an error.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
