package errors

import (
	"errors"

	"github.com/wayfind-dev/wayfind/pkg/routeerr"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Pattern Compiler Errors (RT001-RT099)
	// ============================================

	"RT001": {
		Category: CategoryCompile,
		Message:  "More than one catch-all parameter",
		Detail:   "A route may declare at most one catch-all segment ([...name] or [[...name]]). Split the route or drop one of the catch-alls.",
		DocURL:   "https://wayfind.dev/docs/errors/RT001",
	},
	"RT002": {
		Category: CategoryCompile,
		Message:  "Catch-all parameter is not the last segment",
		Detail:   "A catch-all consumes the remainder of the path, so nothing may follow it except route groups.",
		DocURL:   "https://wayfind.dev/docs/errors/RT002",
	},
	"RT003": {
		Category: CategoryCompile,
		Message:  "Optional parameter is not the last segment",
		Detail:   "Optional parameters ([name?]) may only appear as the final URL segment of a route.",
		DocURL:   "https://wayfind.dev/docs/errors/RT003",
	},
	"RT004": {
		Category: CategoryCompile,
		Message:  "Empty path segment",
		Detail:   "A segment of the file path is empty, or a bracket form has no parameter name.",
		DocURL:   "https://wayfind.dev/docs/errors/RT004",
	},
	"RT005": {
		Category: CategoryCompile,
		Message:  "Unrecognized bracket form",
		Detail:   "The segment looks like a dynamic parameter but does not parse as [name], [name?], [name:constraint], [...name], or [[...name]].",
		DocURL:   "https://wayfind.dev/docs/errors/RT005",
	},
	"RT006": {
		Category: CategoryCompile,
		Message:  "Constraint token could not be interpreted",
		Detail:   "Recognized constraints are int, uint, alpha, alphanum, slug, and uuid; any other token must be a non-empty regex.",
		DocURL:   "https://wayfind.dev/docs/errors/RT006",
	},

	// ============================================
	// Router Errors (RT100-RT199)
	// ============================================

	"RT100": {
		Category: CategoryRoute,
		Message:  "Route name already registered",
		Detail:   "Route names are unique per router. Rename one of the routes or remove the stale registration first.",
		DocURL:   "https://wayfind.dev/docs/errors/RT100",
	},
	"RT101": {
		Category: CategoryRoute,
		Message:  "Missing parameter for URL generation",
		Detail:   "Every required parameter of the pattern must have a binding when generating a URL.",
		DocURL:   "https://wayfind.dev/docs/errors/RT101",
	},
	"RT102": {
		Category: CategoryRoute,
		Message:  "Parameter value violates its constraint",
		Detail:   "The supplied or captured value does not satisfy the parameter's declared constraint.",
		DocURL:   "https://wayfind.dev/docs/errors/RT102",
	},

	// ============================================
	// Scanner Errors (SC001-SC099)
	// ============================================

	"SC001": {
		Category: CategoryScan,
		Message:  "Pages directory could not be read",
		Detail:   "The configured pages root does not exist or is not readable.",
		DocURL:   "https://wayfind.dev/docs/errors/SC001",
	},
	"SC002": {
		Category: CategoryScan,
		Message:  "Some page files failed to compile",
		Detail:   "One or more files under the pages root were rejected by the pattern compiler. Each failure is listed with its own code.",
		DocURL:   "https://wayfind.dev/docs/errors/SC002",
	},

	// ============================================
	// Config Errors (CF001-CF099)
	// ============================================

	"CF001": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No wayfind.json was found in the project directory. Create one at the project root, or pass --pages to skip configuration.",
		DocURL:   "https://wayfind.dev/docs/errors/CF001",
	},
	"CF002": {
		Category: CategoryConfig,
		Message:  "Configuration file is invalid",
		Detail:   "wayfind.json could not be read, parsed as JSON, or written.",
		DocURL:   "https://wayfind.dev/docs/errors/CF002",
	},
	"CF003": {
		Category: CategoryConfig,
		Message:  "Configuration failed validation",
		Detail:   "One or more settings have out-of-range or contradictory values.",
		DocURL:   "https://wayfind.dev/docs/errors/CF003",
	},

	// ============================================
	// Publish Errors (PB001-PB099)
	// ============================================

	"PB001": {
		Category: CategoryPublish,
		Message:  "Route manifest upload failed",
		Detail:   "The manifest could not be written to the configured bucket. Check credentials, region, and bucket name.",
		DocURL:   "https://wayfind.dev/docs/errors/PB001",
	},
	"PB002": {
		Category: CategoryPublish,
		Message:  "No publish destination configured",
		Detail:   "Publishing needs a bucket in wayfind.json or on the command line.",
		DocURL:   "https://wayfind.dev/docs/errors/PB002",
	},

	// ============================================
	// CLI Errors (CL001-CL099)
	// ============================================

	"CL001": {
		Category: CategoryCLI,
		Message:  "Not a Wayfind project",
		Detail:   "The current directory has no wayfind.json and no pages directory.",
		DocURL:   "https://wayfind.dev/docs/errors/CL001",
	},
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// routeErrorCode maps the router's classified error kinds and
// sub-reasons onto registry codes.
func routeErrorCode(rerr *routeerr.Error) string {
	switch rerr.Kind {
	case routeerr.InvalidPattern:
		switch rerr.Reason {
		case routeerr.MultipleCatchAll:
			return "RT001"
		case routeerr.CatchAllNotLast:
			return "RT002"
		case routeerr.OptionalNotLast:
			return "RT003"
		case routeerr.EmptySegment:
			return "RT004"
		default:
			return "RT005"
		}
	case routeerr.ConstraintParse:
		return "RT006"
	case routeerr.NameCollision:
		return "RT100"
	case routeerr.MissingParameter:
		return "RT101"
	case routeerr.ConstraintViolation:
		return "RT102"
	default:
		return ""
	}
}

// FromRouteError converts a classified router error into a coded
// diagnostic, pointing the location at the offending page file when the
// router recorded one. Non-router errors pass through FromError with the
// given fallback code.
func FromRouteError(err error, fallback string) *WayfindError {
	if err == nil {
		return nil
	}
	var rerr *routeerr.Error
	if !errors.As(err, &rerr) {
		return FromError(err, fallback)
	}
	we := New(routeErrorCode(rerr)).Wrap(err)
	if rerr.SourcePath != "" {
		we.WithFile(rerr.SourcePath)
	}
	return we
}
