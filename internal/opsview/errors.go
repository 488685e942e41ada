package opsview

import "fmt"

// APIError is a non-success response from the Opsview REST API. All
// remote failures surface as this one category; none are retried.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("opsview API %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// ErrPendingChanges aborts a run when Opsview has uncommitted
// configuration changes and force mode is off.
type PendingChangesError struct{}

func (e *PendingChangesError) Error() string {
	return "there are pending changes in Opsview; rerun with --force to sweep them in"
}
