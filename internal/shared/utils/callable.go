package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/saransh1220/circle-notify/pkg/errors"
)

const maxCallableBody = 1 << 20

type callableRequest struct {
	Data json.RawMessage `json:"data"`
}

// DecodeCallable reads a callable request body ({"data": {...}}) into dst.
// An empty body or missing data leaves dst untouched.
func DecodeCallable(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallableBody))
	if err != nil {
		return apperrors.InvalidArgument("could not read request body")
	}
	if len(body) == 0 {
		return nil
	}

	var req callableRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.InvalidArgument("request body must be a JSON object with a data field")
	}
	if len(req.Data) == 0 || string(req.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(req.Data, dst); err != nil {
		return apperrors.InvalidArgument("malformed data payload")
	}
	return nil
}

// WriteCallableResult writes {"result": result}.
func WriteCallableResult(w http.ResponseWriter, result any) {
	WriteJSON(w, http.StatusOK, map[string]any{"result": result})
}

// WriteCallableError writes {"error": {"status", "message"}}. Errors that are
// not AppErrors are reported as INTERNAL without leaking their text.
func WriteCallableError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternal
	}
	WriteJSON(w, appErr.StatusCode, map[string]any{
		"error": map[string]string{
			"status":  appErr.Code,
			"message": appErr.Message,
		},
	})
}
