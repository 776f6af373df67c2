package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/schema"
)

const maxBodyBytes = 1 << 20

// decodeInput reads a JSON object body keyed by field name. Values stay raw
// so the schema can tell absent keys from explicit nulls.
func decodeInput(w http.ResponseWriter, r *http.Request) (schema.Input, error) {
	var in schema.Input
	if err := decodeJSON(w, r, &in); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, apperr.BadRequest("request body must be a JSON object")
	}
	return in, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.BadRequest("request body is required")
		case errors.As(err, &maxErr):
			return apperr.BadRequest("request body is too large")
		default:
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field == "" {
				return apperr.BadRequest("request body must be a JSON object")
			}
			if typeErr != nil {
				return apperr.Field(typeErr.Field, "must be a "+typeErr.Type.String())
			}
			return apperr.BadRequest("invalid JSON body")
		}
	}
	if dec.More() {
		return apperr.BadRequest("request body must contain a single JSON value")
	}
	return nil
}
