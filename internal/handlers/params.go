package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// getParam returns a pat path parameter (stored as ":name" in the query) or
// a plain query parameter.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	return r.URL.Query().Get(name)
}

func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(getParam(r, name)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
