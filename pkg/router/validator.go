package router

import (
	"fmt"
	"strings"
)

// ValidationError describes one problem in a route table.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Message is the human-readable error message
	Message string

	// Index is the position of the offending route in the table
	Index int

	// Path is the offending pattern, if any
	Path string

	// Name is the offending route name, if any
	Name string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorInvalidPath indicates a pattern that does not start with "/" or
	// has a malformed parameter segment.
	ErrorInvalidPath ValidationErrorType = "INVALID_PATH"

	// ErrorDuplicatePath indicates two routes with the same pattern.
	ErrorDuplicatePath ValidationErrorType = "DUPLICATE_PATH"

	// ErrorDuplicateName indicates two routes with the same name.
	ErrorDuplicateName ValidationErrorType = "DUPLICATE_NAME"

	// ErrorMissingName indicates a route without a name.
	ErrorMissingName ValidationErrorType = "MISSING_NAME"

	// ErrorMissingComponent indicates a route without a view.
	ErrorMissingComponent ValidationErrorType = "MISSING_COMPONENT"
)

// MultiValidationError wraps every problem found in a table.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Has reports whether an error of the given type was collected.
func (e *MultiValidationError) Has(typ ValidationErrorType) bool {
	for _, err := range e.Errors {
		if err.Type == typ {
			return true
		}
	}
	return false
}

// validateRoutes checks a table and returns a *MultiValidationError with
// every problem, or nil. Paths are compared after trimming a trailing slash,
// so "/produto" and "/produto/" collide.
func validateRoutes(routes []Route) error {
	var errs []ValidationError
	paths := make(map[string]int, len(routes))
	names := make(map[string]int, len(routes))

	for i, route := range routes {
		if !strings.HasPrefix(route.Path, "/") {
			errs = append(errs, ValidationError{
				Type:    ErrorInvalidPath,
				Message: fmt.Sprintf("route %d: path %q must start with \"/\"", i, route.Path),
				Index:   i,
				Path:    route.Path,
				Name:    route.Name,
			})
		} else if msg := checkPattern(route.Path); msg != "" {
			errs = append(errs, ValidationError{
				Type:    ErrorInvalidPath,
				Message: fmt.Sprintf("route %d: %s", i, msg),
				Index:   i,
				Path:    route.Path,
				Name:    route.Name,
			})
		}

		key := "/" + strings.Join(splitPattern(route.Path), "/")
		if prev, ok := paths[key]; ok {
			errs = append(errs, ValidationError{
				Type:    ErrorDuplicatePath,
				Message: fmt.Sprintf("routes %d and %d share path %s", prev, i, key),
				Index:   i,
				Path:    route.Path,
				Name:    route.Name,
			})
		} else {
			paths[key] = i
		}

		if route.Name == "" {
			errs = append(errs, ValidationError{
				Type:    ErrorMissingName,
				Message: fmt.Sprintf("route %d (%s) has no name", i, route.Path),
				Index:   i,
				Path:    route.Path,
			})
		} else if prev, ok := names[route.Name]; ok {
			errs = append(errs, ValidationError{
				Type:    ErrorDuplicateName,
				Message: fmt.Sprintf("routes %d and %d share name %q", prev, i, route.Name),
				Index:   i,
				Path:    route.Path,
				Name:    route.Name,
			})
		} else {
			names[route.Name] = i
		}

		if route.Component == nil {
			errs = append(errs, ValidationError{
				Type:    ErrorMissingComponent,
				Message: fmt.Sprintf("route %q has no component", route.Name),
				Index:   i,
				Path:    route.Path,
				Name:    route.Name,
			})
		}
	}

	if len(errs) > 0 {
		return &MultiValidationError{Errors: errs}
	}
	return nil
}

// checkPattern returns a description of what is wrong with a pattern, or "".
func checkPattern(pattern string) string {
	segments := splitPattern(pattern)
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			if len(seg) == 1 {
				return fmt.Sprintf("catch-all in %s needs a name", pattern)
			}
			if i != len(segments)-1 {
				return fmt.Sprintf("catch-all must be the last segment of %s", pattern)
			}
		case strings.HasPrefix(seg, ":"):
			name, typ := parseParamSegment(seg)
			if name == "" {
				return fmt.Sprintf("parameter in %s needs a name", pattern)
			}
			if typ != "string" && typ != "int" {
				return fmt.Sprintf("parameter %q in %s has unknown type %q", name, pattern, typ)
			}
		case seg == "":
			return fmt.Sprintf("empty segment in %s", pattern)
		}
	}
	return ""
}
