package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/pkg/logger"
)

// SetDefaultHeaders sets the basic set of headers to the response.
func SetDefaultHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Accept,Authorization,Accept-Language,Content-Type,Content-Language")
}

type errorResponse struct {
	Error string `json:"error"`
}

func apiError(w http.ResponseWriter, err error) {
	SetDefaultHeaders(w)
	code := http.StatusInternalServerError
	msg := "internal error"
	switch true {
	case errors.Is(err, model.ErrNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, model.ErrUnauthorized):
		code = http.StatusUnauthorized
		msg = err.Error()
	case badInput(err):
		code = http.StatusBadRequest
		msg = err.Error()
	default:
		logger.Errorf("rest: %v", err)
	}
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		logger.Errorf("rest: encode error response: %v", err)
	}
}

func apiSuccess(w http.ResponseWriter, data interface{}) {
	SetDefaultHeaders(w)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("rest: encode response: %v", err)
	}
}

func badInput(err error) bool {
	return errors.Is(err, model.ErrBadInput) ||
		errors.Is(err, model.ErrEmptyGeometry) ||
		errors.Is(err, model.ErrInvalidGeometry) ||
		errors.Is(err, model.ErrUnknownFormat)
}
