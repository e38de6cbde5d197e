package sources

import (
	"fmt"
	"net/http"
)

// NotFoundError is returned when the site answers 404 for the requested
// page, query or slug.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Identifier)
}

// TransportError carries any status other than 200 and 404.
type TransportError struct {
	Code int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}
