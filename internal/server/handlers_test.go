package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"edigivault/internal/draft"
	"edigivault/internal/gateway"
	"edigivault/internal/gateway/gatewaytest"
	"edigivault/internal/session"
	"edigivault/internal/workflow"
	"edigivault/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

const (
	handlerUser         = "user-1"
	handlerDraftSession = "draft-session-1"
)

// HandlerSuite drives the workflow and payment handlers over httptest with
// the in-memory draft store and store fakes. The production routes are
// mounted behind a middleware that injects the session directly, standing
// in for the token verification stack.
type HandlerSuite struct {
	suite.Suite
	service *Service
	store   *gatewaytest.Store
	drafts  *draft.Memory
	mux     *flow.Mux
	ctx     context.Context
}

func (s *HandlerSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.store = gatewaytest.NewStore()
	s.drafts = draft.NewMemory()
	s.ctx = context.Background()

	gw := gateway.New(logger, s.store, s.store, s.store, s.store, s.store, s.store, s.store, gatewaytest.NewStorage())
	s.service = &Service{logger: logger, gateway: gw, drafts: s.drafts}

	s.mux = flow.New()
	s.mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), contextKeySession, &session.Session{UserID: handlerUser, Phone: "+919900112233"})
			ctx = context.WithValue(ctx, contextKeyDraftSession, handlerDraftSession)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	s.mux.HandleFunc("/v1/workflow/registration-type", s.service.handlePutRegistrationType, http.MethodPut)
	s.mux.HandleFunc("/v1/workflow/project", s.service.handlePutProjectDraft, http.MethodPut)
	s.mux.HandleFunc("/v1/workflow/property", s.service.handlePutPropertyDraft, http.MethodPut)
	s.mux.HandleFunc("/v1/workflow/service", s.service.handlePutMainService, http.MethodPut)
	s.mux.HandleFunc("/v1/workflow/sub-service", s.service.handleSelectSubService, http.MethodPost)
	s.mux.HandleFunc("/v1/service-requests/:requestID/charges/:chargeID/consent", s.service.handleChargeConsent, http.MethodPost)
	s.mux.HandleFunc("/v1/service-requests/:requestID/charges/:chargeID/pay", s.service.handleInitiatePayment, http.MethodPost)
	s.mux.HandleFunc("/v1/service-requests/:requestID/payment", s.service.handleGetPayment, http.MethodGet)
	s.mux.HandleFunc("/v1/service-requests/:requestID/payment/simulate", s.service.handleSimulatePayment, http.MethodPost)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decodeRedirect(rec *httptest.ResponseRecorder) string {
	var body map[string]string
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	return body["redirect"]
}

// draftToServiceSelection walks the stepper up to the point where a
// sub-service can be chosen.
func (s *HandlerSuite) draftToServiceSelection() {
	rec := s.do(http.MethodPut, "/v1/workflow/registration-type", map[string]string{"registrationType": "individual"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, "/v1/workflow/project", map[string]string{"title": "Hebbal Plot"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, "/v1/workflow/property", map[string]string{"propertyName": "Plot 12/4"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, "/v1/workflow/service", map[string]string{"serviceId": "e-katha"})
	s.Require().Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) selectSubService() *types.ServiceRequest {
	rec := s.do(http.MethodPost, "/v1/workflow/sub-service", map[string]string{"subService": "New E-Katha Registration"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body subServiceResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	return body.ServiceRequest
}

func (s *HandlerSuite) TestPropertyStepRedirectsWithoutProject() {
	rec := s.do(http.MethodPut, "/v1/workflow/property", map[string]string{"propertyName": "Plot 12/4"})

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(workflow.StepCreateProject), s.decodeRedirect(rec))

	// the redirect must happen before anything reaches the stores
	s.Empty(s.store.Projects)
	s.Empty(s.store.Properties)
}

func (s *HandlerSuite) TestSelectSubServiceReconciles() {
	s.draftToServiceSelection()

	rec := s.do(http.MethodPost, "/v1/workflow/sub-service", map[string]string{"subService": "New E-Katha Registration"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body subServiceResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.True(body.Created)
	s.Equal(types.ServiceRequestStatusDraft, body.ServiceRequest.Status)
	s.NotEmpty(body.Context.RemoteProjectID)
	s.NotEmpty(body.Context.RemotePropertyID)

	s.Len(s.store.Projects, 1)
	s.Len(s.store.Properties, 1)
	s.Len(s.store.Requests, 1)

	s.Run("selecting again reuses the records", func() {
		rec := s.do(http.MethodPost, "/v1/workflow/sub-service", map[string]string{"subService": "Khata Bifurcation"})
		s.Require().Equal(http.StatusOK, rec.Code)

		var again subServiceResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&again))
		s.False(again.Created)
		s.Equal(body.ServiceRequest.ID, again.ServiceRequest.ID)

		s.Len(s.store.Projects, 1)
		s.Len(s.store.Properties, 1)
		s.Len(s.store.Requests, 1)
	})
}

func (s *HandlerSuite) TestSelectSubServiceRetryAfterFailure() {
	s.draftToServiceSelection()

	s.store.FailCreateProperty = errors.New("pool exhausted")
	rec := s.do(http.MethodPost, "/v1/workflow/sub-service", map[string]string{"subService": "New E-Katha Registration"})
	s.Require().Equal(http.StatusInternalServerError, rec.Code)
	s.Len(s.store.Projects, 1)

	// the created project's ID must survive the failed request, or a
	// retry would create a second project row
	wctx := workflow.Load(s.ctx, s.drafts, handlerDraftSession)
	s.Require().NotEmpty(wctx.RemoteProjectID)
	s.Contains(s.store.Projects, wctx.RemoteProjectID)

	s.store.FailCreateProperty = nil
	request := s.selectSubService()
	s.Equal(wctx.RemoteProjectID, request.ProjectID)

	s.Len(s.store.Projects, 1)
	s.Len(s.store.Properties, 1)
	s.Len(s.store.Requests, 1)
}

func (s *HandlerSuite) TestPaymentFlow() {
	s.draftToServiceSelection()
	request := s.selectSubService()
	base := "/v1/service-requests/" + request.ID

	s.Run("simulate before initiation is refused", func() {
		rec := s.do(http.MethodPost, base+"/payment/simulate", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Empty(s.store.Transactions)
	})

	s.Run("initiation without consent is refused", func() {
		rec := s.do(http.MethodPost, base+"/charges/basic-legal/pay", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("consent then pay then simulate records the transaction", func() {
		rec := s.do(http.MethodPost, base+"/charges/basic-legal/consent", map[string]bool{"accepted": true})
		s.Require().Equal(http.StatusOK, rec.Code)

		rec = s.do(http.MethodPost, base+"/charges/basic-legal/pay", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		rec = s.do(http.MethodGet, base+"/payment", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		var payment paymentResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&payment))
		s.Equal("initiated", payment.Status)
		s.Equal("basic-legal", payment.ChargeType)

		rec = s.do(http.MethodPost, base+"/payment/simulate", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		s.Require().Len(s.store.Transactions, 1)
		s.Equal("Basic Investigation / Legal Charges", s.store.Transactions[0].Item)

		rec = s.do(http.MethodGet, base+"/payment", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		payment = paymentResponse{}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&payment))
		s.Equal("paid", payment.Status)
	})
}
