package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies: two 1MB samples plus envelope.
const MaxBodyBytes = 4 << 20

// ParseJSON decodes a single JSON object from the request body into dest.
// An empty body decodes as {} so envelope-only routes accept bare POSTs.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	// Unknown fields are accepted; clients may send extra envelope keys.

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if decoder.More() {
		return errors.New("invalid JSON: unexpected data after top-level object")
	}

	return nil
}
