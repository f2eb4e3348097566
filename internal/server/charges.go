package server

import (
	"net/http"

	"edigivault/internal/draft"
	"edigivault/internal/gateway"
	"edigivault/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleCharges(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, gateway.Charges())
}

type chargeConsentInput struct {
	Accepted bool `json:"accepted"`
}

// handleChargeConsent records acceptance of the terms for one charge
// category. Consent is a draft-session fact, not a server record: the
// payment placeholder keeps no durable state until a transaction exists.
func (s *Service) handleChargeConsent(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessionFromContext(r.Context()); err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")
	chargeID := flow.Param(r.Context(), "chargeID")

	charge, ok := gateway.ChargeByID(chargeID)
	if !ok {
		s.respondError(w, &types.NotFoundError{Entity: "charge", ID: chargeID})
		return
	}

	var input chargeConsentInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	if !input.Accepted {
		s.respondError(w, &types.ValidationError{Message: "terms must be accepted before paying"})
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	ctx := r.Context()
	if err := s.drafts.Put(ctx, draftID, draft.ChargeConsentKey(requestID), true); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.drafts.Put(ctx, draftID, draft.ChargeTypeKey(requestID), charge.ID); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.drafts.Put(ctx, draftID, draft.PaymentStageKey(requestID), charge.Stage); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "consented", "chargeType": charge.ID})
}

// handleInitiatePayment marks a payment as started. Consent must have been
// recorded first in this draft session.
func (s *Service) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessionFromContext(r.Context()); err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")
	chargeID := flow.Param(r.Context(), "chargeID")

	if _, ok := gateway.ChargeByID(chargeID); !ok {
		s.respondError(w, &types.NotFoundError{Entity: "charge", ID: chargeID})
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	ctx := r.Context()

	var consented bool
	if !s.drafts.Get(ctx, draftID, draft.ChargeConsentKey(requestID), &consented) || !consented {
		s.respondError(w, &types.ValidationError{Message: "terms must be accepted before paying"})
		return
	}

	if err := s.drafts.Put(ctx, draftID, draft.PaymentStatusKey(requestID), "initiated"); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "initiated"})
}

type paymentResponse struct {
	Status     string `json:"status"`
	ChargeType string `json:"chargeType,omitempty"`
	Stage      string `json:"stage,omitempty"`
}

func (s *Service) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessionFromContext(r.Context()); err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")
	draftID := s.draftSessionFromContext(r.Context())
	ctx := r.Context()

	response := paymentResponse{Status: "none"}
	var status string
	if s.drafts.Get(ctx, draftID, draft.PaymentStatusKey(requestID), &status) {
		response.Status = status
	}
	var chargeType string
	if s.drafts.Get(ctx, draftID, draft.ChargeTypeKey(requestID), &chargeType) {
		response.ChargeType = chargeType
	}
	var stage string
	if s.drafts.Get(ctx, draftID, draft.PaymentStageKey(requestID), &stage) {
		response.Stage = stage
	}

	s.respondJSON(w, http.StatusOK, response)
}

// handleSimulatePayment completes the placeholder payment: the status flips
// to paid and a transaction row is written so the history screen has a
// durable record. No money moves anywhere.
func (s *Service) handleSimulatePayment(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")
	draftID := s.draftSessionFromContext(r.Context())
	ctx := r.Context()

	var status string
	if !s.drafts.Get(ctx, draftID, draft.PaymentStatusKey(requestID), &status) || status != "initiated" {
		s.respondError(w, &types.ValidationError{Message: "payment has not been initiated"})
		return
	}

	var chargeType string
	if !s.drafts.Get(ctx, draftID, draft.ChargeTypeKey(requestID), &chargeType) {
		s.respondError(w, &types.ValidationError{Message: "no charge recorded for this payment"})
		return
	}
	charge, ok := gateway.ChargeByID(chargeType)
	if !ok {
		s.respondError(w, &types.ValidationError{Message: "no charge recorded for this payment"})
		return
	}

	transaction, err := s.gateway.RecordPayment(ctx, sess.UserID, requestID, charge)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.drafts.Put(ctx, draftID, draft.PaymentStatusKey(requestID), "paid"); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":      "paid",
		"transaction": transaction,
	})
}
