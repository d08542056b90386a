package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Async component load failed",
		Detail:   "The loader of an async component returned an error and no error component was configured to display it.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Async component timed out",
		Detail:   "The loader of an async component did not finish within its timeout.",
	},

	// ============================================
	// Protocol Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryProtocol,
		Message:  "Malformed client message",
		Detail:   "A live client sent a frame that could not be decoded.",
	},
	"E011": {
		Category: CategoryProtocol,
		Message:  "Unknown node",
		Detail:   "A live client referenced a node id the session does not know. The node may have been removed by a newer frame.",
	},

	// ============================================
	// Config Errors (E120-E141)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "rendr.yaml could not be parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "log.level must be one of debug, info, warn or error.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid address",
		Detail:   "serve.addr must be host:port.",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Invalid log format",
		Detail:   "log.format must be text or json.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No rendr.yaml was found in the given directory.",
	},

	// ============================================
	// Fixture Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryFixture,
		Message:  "Fixture parse failed",
		Detail:   "The fixture file is not valid YAML.",
	},
	"E151": {
		Category: CategoryFixture,
		Message:  "Invalid fixture node",
		Detail:   "A node must have exactly one of tag, text or fragment.",
	},

	// ============================================
	// Snapshot Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategorySnapshot,
		Message:  "Snapshot write failed",
		Detail:   "The rendered HTML could not be stored.",
	},
	"E161": {
		Category: CategorySnapshot,
		Message:  "Invalid snapshot target",
		Detail:   "A snapshot target is a file path or s3://bucket/key.",
	},

	// ============================================
	// CLI Errors (E170-E179)
	// ============================================

	"E170": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "A command-line argument could not be parsed.",
	},
	"E171": {
		Category: CategoryCLI,
		Message:  "Directory not empty",
		Detail:   "rendr init only writes into a new or empty directory.",
	},
	"E172": {
		Category: CategoryCLI,
		Message:  "Unknown template",
		Detail:   "The requested starter template does not exist.",
	},
	"E173": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names cannot contain spaces or path separators.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
