package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"edigivault/pkg/types"
)

type errorResponse struct {
	Error            string            `json:"error"`
	Fields           map[string]string `json:"fields,omitempty"`
	MissingDocuments []string          `json:"missingDocuments,omitempty"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// respondError maps the gateway's error categories onto status codes.
// Anything outside the taxonomy is a 500 with no detail leaked.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	var authErr *types.AuthError
	if errors.As(err, &authErr) {
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: authErr.Error()})
		return
	}

	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:            validationErr.Message,
			Fields:           validationErr.Fields,
			MissingDocuments: validationErr.MissingDocuments,
		})
		return
	}

	var notFoundErr *types.NotFoundError
	if errors.As(err, &notFoundErr) {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
		return
	}

	var networkErr *types.NetworkError
	if errors.As(err, &networkErr) {
		s.logger.WithError(err).Error("upstream failure")
		s.respondJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream service unavailable, please retry"})
		return
	}

	s.logger.WithError(err).Error("unhandled error")
	s.internalServerError(w)
}

func (s *Service) respondUnauthorized(w http.ResponseWriter) {
	s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (s *Service) decodeJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return &types.ValidationError{Message: "invalid request body"}
	}
	return nil
}
