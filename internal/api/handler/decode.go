package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies. A full 60x40 board fits comfortably.
const maxBodyBytes = 64 << 10

// decodeJSON reads the request body into dst. An empty body leaves dst at
// its zero value when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}
	return NewInvalidRequestError("invalid request body")
}
