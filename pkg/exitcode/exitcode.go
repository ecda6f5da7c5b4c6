// Package exitcode provides standardized exit codes for flc
package exitcode

// Exit codes for the flc CLI
const (
	Success         = 0
	HeadersMissing  = 1
	ConfigError     = 2
	ValidationError = 3
	FileSystemError = 4
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case HeadersMissing:
		return "One or more files failed the header check"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	default:
		return "Unknown error"
	}
}
