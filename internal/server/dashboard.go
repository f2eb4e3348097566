package server

import (
	"net/http"
)

func (s *Service) handleListActivities(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	activities, err := s.gateway.Activities(r.Context(), sess.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, activities)
}

func (s *Service) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	transactions, err := s.gateway.Transactions(r.Context(), sess.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, transactions)
}
