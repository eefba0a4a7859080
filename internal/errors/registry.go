package errors

import "sort"

// Template defines a registered error code.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

var registry = map[string]Template{
	// Routing (V001-V009)

	"V001": {
		Category:   CategoryRouting,
		Message:    "Invalid route table",
		Detail:     "Every route needs a path starting with \"/\", a unique name and a view. Paths and names must not repeat.",
		Suggestion: "fix the table in internal/app/routes.go",
	},
	"V002": {
		Category:   CategoryRouting,
		Message:    "Invalid base path",
		Detail:     "The base path prefixes every route URL. It must be a plain URL path such as \"/\" or \"/loja/\".",
		Suggestion: "set BASE_URL or baseURL in vitrine.json",
	},

	// Configuration (V010-V019)

	"V010": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be read",
		Detail:   "vitrine.json exists but is not valid JSON.",
	},
	"V011": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},

	// Server (V020-V029)

	"V020": {
		Category:   CategoryServer,
		Message:    "Server failed to start",
		Suggestion: "check that the port is free, or pass --port",
	},
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for a code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
