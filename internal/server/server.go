// Package server exposes the workflow over a JSON API.
package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"edigivault/internal/draft"
	"edigivault/internal/gateway"
	"edigivault/internal/session"
	"edigivault/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger  *logrus.Logger
	config  *types.Config
	gateway *gateway.Gateway
	drafts  draft.Store

	sessions *session.Manager
	auth     *session.AuthClient
	cookie   *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	gw *gateway.Gateway,
	drafts draft.Store,
	sessions *session.Manager,
	auth *session.AuthClient,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:   logger,
		config:   config,
		gateway:  gw,
		drafts:   drafts,
		sessions: sessions,
		auth:     auth,
		cookie:   securecookie.New(hashKey, blockKey),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/v1/auth/otp", s.handleSendOTP, http.MethodPost)
	r.HandleFunc("/v1/auth/verify", s.handleVerifyOTP, http.MethodPost)
	r.HandleFunc("/v1/auth/logout", s.handleLogout, http.MethodPost)

	r.HandleFunc("/v1/services", s.handleMainServices, http.MethodGet)
	r.HandleFunc("/v1/services/:serviceID/sub-services", s.handleSubServices, http.MethodGet)
	r.HandleFunc("/v1/charges", s.handleCharges, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireSession)
		r.Use(s.EnsureDraftSession)

		r.HandleFunc("/v1/profile", s.handleGetProfile, http.MethodGet)
		r.HandleFunc("/v1/register", s.handleRegister, http.MethodPost)

		r.HandleFunc("/v1/workflow", s.handleGetWorkflow, http.MethodGet)
		r.HandleFunc("/v1/workflow", s.handleResetWorkflow, http.MethodDelete)
		r.HandleFunc("/v1/workflow/registration-type", s.handlePutRegistrationType, http.MethodPut)
		r.HandleFunc("/v1/workflow/project", s.handlePutProjectDraft, http.MethodPut)
		r.HandleFunc("/v1/workflow/property", s.handlePutPropertyDraft, http.MethodPut)
		r.HandleFunc("/v1/workflow/service", s.handlePutMainService, http.MethodPut)
		r.HandleFunc("/v1/workflow/sub-service", s.handleSelectSubService, http.MethodPost)

		r.HandleFunc("/v1/projects", s.handleListProjects, http.MethodGet)
		r.HandleFunc("/v1/projects", s.handleCreateProject, http.MethodPost)
		r.HandleFunc("/v1/projects/:projectID/properties", s.handleListProperties, http.MethodGet)
		r.HandleFunc("/v1/properties", s.handleCreateProperty, http.MethodPost)

		r.HandleFunc("/v1/service-requests/:requestID", s.handleGetServiceRequest, http.MethodGet)
		r.HandleFunc("/v1/service-requests/:requestID/checklist", s.handleGetChecklist, http.MethodGet)
		r.HandleFunc("/v1/service-requests/:requestID/documents", s.handleUploadDocument, http.MethodPost)
		r.HandleFunc("/v1/service-requests/:requestID/documents/not-available", s.handleSetNotAvailable, http.MethodPost)
		r.HandleFunc("/v1/documents/:documentID", s.handleDeleteDocument, http.MethodDelete)
		r.HandleFunc("/v1/service-requests/:requestID/save-draft", s.handleSaveDraft, http.MethodPost)
		r.HandleFunc("/v1/service-requests/:requestID/submit", s.handleSubmit, http.MethodPost)

		r.HandleFunc("/v1/service-requests/:requestID/charges/:chargeID/consent", s.handleChargeConsent, http.MethodPost)
		r.HandleFunc("/v1/service-requests/:requestID/charges/:chargeID/pay", s.handleInitiatePayment, http.MethodPost)
		r.HandleFunc("/v1/service-requests/:requestID/payment", s.handleGetPayment, http.MethodGet)
		r.HandleFunc("/v1/service-requests/:requestID/payment/simulate", s.handleSimulatePayment, http.MethodPost)

		r.HandleFunc("/v1/activities", s.handleListActivities, http.MethodGet)
		r.HandleFunc("/v1/transactions", s.handleListTransactions, http.MethodGet)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
