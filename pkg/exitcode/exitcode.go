// Package exitcode provides standardized exit codes for curator
package exitcode

// Exit codes for the curator CLI
const (
	Success            = 0
	GeneralError       = 1
	ConfigError        = 2
	PreconditionFailed = 3
	BatchFailures      = 4
	BatchCancelled     = 5
	RepositoryError    = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case PreconditionFailed:
		return "Precondition failed"
	case BatchFailures:
		return "Batch completed with failures"
	case BatchCancelled:
		return "Batch cancelled"
	case RepositoryError:
		return "Repository error"
	default:
		return "Unknown error"
	}
}
