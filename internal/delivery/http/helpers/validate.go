package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"monipaep/internal/domain"
)

// MaxBodyBytes caps console request bodies. The largest ones are health
// protocol descriptions, far below this.
const MaxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that check their own fields.
// Validate returns one message per problem; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads a single JSON object of at most MaxBodyBytes into
// dest, rejecting unknown fields, then runs dest's Validate when it has one.
// On failure the error response is already written and false is returned.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dest)
	if err == nil && dec.More() {
		err = errors.New("trailing data after JSON object")
	}
	if err != nil {
		writeDecodeError(w, err)
		return false
	}
	if v, ok := dest.(Validator); ok {
		if err := domain.NewValidationError(v.Validate()); err != nil {
			status, code, msg := ErrorStatus(err)
			WriteJSONError(w, status, code, msg)
			return false
		}
	}
	return true
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, io.EOF):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body is empty")
	default:
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
	}
}
