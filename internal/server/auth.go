package server

import (
	"net/http"
	"time"

	"edigivault/internal"
	"edigivault/internal/session"
	"edigivault/internal/workflow"
	"edigivault/pkg/types"
)

type sendOTPInput struct {
	Phone string `json:"phone"`
}

func (s *Service) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var input sendOTPInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	if input.Phone == "" {
		s.respondError(w, &types.ValidationError{
			Message: "phone number is required",
			Fields:  map[string]string{"phone": "required"},
		})
		return
	}

	phone := session.NormalizePhone(input.Phone)
	if err := s.auth.SendOTP(r.Context(), phone); err != nil {
		s.respondError(w, &types.NetworkError{Op: "send otp", Err: err})
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"phone": phone})
}

type verifyOTPInput struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type sessionResponse struct {
	UserID    string    `json:"userId"`
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Service) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var input verifyOTPInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	if input.Phone == "" || input.Code == "" {
		s.respondError(w, &types.ValidationError{Message: "phone and code are required"})
		return
	}

	phone := session.NormalizePhone(input.Phone)
	sess, err := s.auth.VerifyOTP(r.Context(), phone, input.Code)
	if err != nil {
		s.logger.WithError(err).Info("otp verification rejected")
		s.respondError(w, &types.AuthError{Reason: "invalid or expired code"})
		return
	}

	if _, err := s.gateway.EnsureProfile(r.Context(), sess.UserID, sess.Phone, "", ""); err != nil {
		s.respondError(w, err)
		return
	}

	encryptedToken, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, sess.AccessToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token")
		s.internalServerError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		Path:     "/",
	})

	s.sessions.Notify(sess)

	s.logger.WithField("user_id", sess.UserID).Info("user signed in")

	s.respondJSON(w, http.StatusOK, sessionResponse{
		UserID:    sess.UserID,
		Phone:     sess.Phone,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})

	s.sessions.Notify(nil)

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	profile, err := s.gateway.Profile(r.Context(), sess.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

type registerInput struct {
	RegistrationType types.RegistrationType `json:"registrationType"`
	Name             string                 `json:"name"`
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	var input registerInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	switch input.RegistrationType {
	case types.RegistrationTypeIndividual, types.RegistrationTypeOrganization, types.RegistrationTypeLandAggregator:
	default:
		s.respondError(w, &types.ValidationError{
			Message: "unknown registration type",
			Fields:  map[string]string{"registrationType": "must be individual, organization or land_aggregator"},
		})
		return
	}

	profile, err := s.gateway.EnsureProfile(r.Context(), sess.UserID, sess.Phone, input.Name, input.RegistrationType)
	if err != nil {
		s.respondError(w, err)
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)
	wctx.RegistrationType = input.RegistrationType
	if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
		s.logger.WithError(err).Warn("failed to persist workflow context")
	}

	s.respondJSON(w, http.StatusOK, profile)
}
