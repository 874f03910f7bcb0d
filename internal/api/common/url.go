package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// PathParam returns the decoded chi URL parameter name. Record and window ids must be
// non-empty and free of whitespace.
func PathParam(r *http.Request, name string) (string, error) {
	value, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil {
		return "", fmt.Errorf("invalid URL encoding in %s", name)
	}

	switch {
	case strings.TrimSpace(value) == "":
		return "", fmt.Errorf("%s cannot be empty", name)
	case strings.ContainsAny(value, " \t\n\r"):
		return "", fmt.Errorf("%s cannot contain whitespace", name)
	}
	return value, nil
}
