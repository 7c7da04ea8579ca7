package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rpupo63/signature-homes-backend/errs"
)

const maxJSONBodySize = 64 * 1024

// decodeJSONBody reads a JSON body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewMalformedPayloadError("JSON", err)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		if allowEmpty {
			return nil
		}
		return errs.NewMalformedPayloadError("JSON", errors.New("empty body"))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errs.NewMalformedPayloadError("JSON", err)
	}
	return nil
}

// projectQuery reads the optional ?project= filter. Missing or blank means
// show all.
func projectQuery(r *http.Request) *string {
	value := strings.TrimSpace(r.URL.Query().Get("project"))
	if value == "" {
		return nil
	}
	return &value
}
