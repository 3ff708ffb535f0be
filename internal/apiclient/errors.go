package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 2048

// StatusError is returned for non-2xx responses
type StatusError struct {
	Route      string
	StatusCode int
	// Detail is the problem-details "detail" member, or the raw body when absent
	Detail string
	// Fields holds per-field messages from a 400 problem's "errors" member
	Fields map[string]string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("POST %s: %d %s", e.Route, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("POST %s: %d %s: %s", e.Route, e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

func newStatusError(route string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := &StatusError{Route: route, StatusCode: resp.StatusCode}

	if !gjson.ValidBytes(body) {
		statusErr.Detail = strings.TrimSpace(string(body))
		return statusErr
	}

	parsed := gjson.ParseBytes(body)
	statusErr.Detail = parsed.Get("detail").String()
	if errs := parsed.Get("errors"); errs.IsObject() {
		statusErr.Fields = make(map[string]string)
		errs.ForEach(func(key, value gjson.Result) bool {
			statusErr.Fields[key.String()] = value.String()
			return true
		})
	}
	return statusErr
}
