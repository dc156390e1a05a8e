// Package errors provides structured, actionable error messages for
// Wayfind's CLI and tooling.
//
// The routing library itself returns small classified errors from
// pkg/routeerr; this package layers the presentation on top:
//   - Stable error codes (e.g. "RT002") with category, detail, and a
//     documentation link
//   - Optional source location pointing at the offending page file
//   - Fix suggestions and pages-tree examples
//   - Terminal, compact, and JSON formatting
//
// # Error Categories
//
// Errors are organized into categories:
//   - compile: pattern compiler rejections (RT0xx)
//   - route: router registration and URL generation failures (RT1xx)
//   - scan: pages-directory walk failures (SC0xx)
//   - config: wayfind.json problems (CF0xx)
//   - publish: manifest upload failures (PB0xx)
//   - cli: command-line usage errors (CL0xx)
//
// # Usage
//
//	if err := scanner.ScanInto(r); err != nil {
//	    errors.PrintError(errors.FromRouteError(err, "SC002"))
//	}
//
// FromRouteError maps each routeerr kind and sub-reason to its code, so
// a CatchAllNotLast rejection prints as RT002 with the file that caused
// it.
package errors
