package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	errs "github.com/laneflow/laneflow/pkg/errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", code,
		"err", err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errorBody{Code: string(code), Message: errs.UserMessage(err)},
	})
}

// statusFor maps machine codes onto HTTP statuses. Upstream platform
// failures surface as 502 so callers can tell them from our own 500s.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidProcess, errs.ErrCodeInvalidFormat,
		errs.ErrCodeInvalidDiagram, errs.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeProcessNotFound, errs.ErrCodeDiagramNotFound,
		errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errs.ErrCodeForbidden:
		return http.StatusForbidden
	case errs.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errs.ErrCodeLayout, errs.ErrCodeLinkExhaustion:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNetwork, errs.ErrCodeTimeout, errs.ErrCodeExtraction,
		errs.ErrCodeLLMResponse, errs.ErrCodePublish, errs.ErrCodeSync:
		return http.StatusBadGateway
	case errs.ErrCodeInvalidConfig:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// coded attaches a fallback code to errors that don't carry one yet, so
// wrapped platform and pipeline errors keep their more specific codes.
func coded(err error, fallback errs.Code, msg string) error {
	if errs.GetCode(err) != "" {
		return err
	}
	return errs.Wrap(fallback, err, "%s", msg)
}

// decodeJSON reads a JSON request body into v. An empty body is not an
// error; handlers with required fields check them afterwards.
func decodeJSON(r *http.Request, w http.ResponseWriter, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
}
