package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across layers so callers can branch on the
// failure class without depending on a concrete implementation package.
var (
	// ErrTagNotFound marks lookups for a risk that does not exist
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagSourceNotFound marks an unreachable or misconfigured tabular
	// source (missing file, missing credentials or sheet ID)
	ErrTagSourceNotFound = goerr.NewTag("source_not_found")

	// ErrTagSourceUnreadable marks a source whose overall structure could
	// not be read (malformed CSV, API-level read failure)
	ErrTagSourceUnreadable = goerr.NewTag("source_unreadable")

	// ErrTagRendererUnavailable marks a request for a report format whose
	// renderer is not available
	ErrTagRendererUnavailable = goerr.NewTag("renderer_unavailable")
)
