package server

import (
	"errors"
	"fmt"
	"net/http"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// tooLargeError is a request body over the size limit.
type tooLargeError struct{ limit int64 }

func (e *tooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.limit)
}

func errTooLarge(limit int64) error { return &tooLargeError{limit: limit} }

func errNotFound(path string) error {
	return clerrors.New(clerrors.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error to its HTTP status and public code.
func statusFor(err error) (int, clerrors.Code) {
	var tl *tooLargeError
	if errors.As(err, &tl) {
		return http.StatusRequestEntityTooLarge, clerrors.ErrCodeInvalidInput
	}

	code := clerrors.GetCode(err)
	switch {
	case clerrors.IsInvalid(err):
		return http.StatusBadRequest, code
	case code == clerrors.ErrCodeNotFound, code == clerrors.ErrCodeFileNotFound, code == clerrors.ErrCodeChildNotFound:
		return http.StatusNotFound, code
	case code == clerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	case code == "":
		return http.StatusInternalServerError, clerrors.ErrCodeInternal
	default:
		return http.StatusInternalServerError, code
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := clerrors.UserMessage(err)
	if code == clerrors.ErrCodeInternal {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}
