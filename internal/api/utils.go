package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/quest_errors"
)

const maxBodyBytes = 1 << 20

// numbers are kept as json.Number so test case values render exactly as sent
func decodeJsonBody(body io.Reader, v any) error {
	decoder := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	return nil
}

func respondWithJson(w http.ResponseWriter, statusCode int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(response); err != nil {
		log.Errorf("cannot write response, %v", err)
	}
}

// marshals v and responds with it, a marshal failure is a 500
func marshalAndRespond(w http.ResponseWriter, statusCode int, v any) {
	responseBytes, err := json.Marshal(v)
	if err != nil {
		log.WithField("response", v).Errorf("unable to marshal response, %v", err)
		http.Error(w, quest_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJson(w, statusCode, responseBytes)
}

// handlerError maps service errors to status codes. Internal errors only
// ever reach the client as the generic message.
func handlerError(err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, quest_errors.ErrInternal):
		http.Error(w, quest_errors.ErrInternal.Error(), http.StatusInternalServerError)
	case errors.Is(err, quest_errors.ErrInvalidInput),
		errors.Is(err, quest_errors.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quest_errors.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quest_errors.ErrUnAuthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		log.Errorf("unknown error reached the handler, %v", err)
		http.Error(w, quest_errors.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

func int32URLParam(r *http.Request, name string) (int32, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return int32(value), nil
}

func uuidURLParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	value, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid uuid", name)
	}
	return value, nil
}
