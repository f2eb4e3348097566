package server

import (
	"net/http"

	"edigivault/internal/workflow"
	"edigivault/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleMainServices(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, workflow.MainServices())
}

func (s *Service) handleSubServices(w http.ResponseWriter, r *http.Request) {
	serviceID := flow.Param(r.Context(), "serviceID")

	if _, ok := workflow.MainServiceByID(serviceID); !ok {
		s.respondError(w, &types.NotFoundError{Entity: "service", ID: serviceID})
		return
	}

	s.respondJSON(w, http.StatusOK, workflow.SubServices(serviceID))
}

type workflowResponse struct {
	Context *types.WorkflowContext `json:"context"`
}

func (s *Service) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)
	s.respondJSON(w, http.StatusOK, workflowResponse{Context: wctx})
}

func (s *Service) handleResetWorkflow(w http.ResponseWriter, r *http.Request) {
	draftID := s.draftSessionFromContext(r.Context())
	if err := workflow.Clear(r.Context(), s.drafts, draftID); err != nil {
		s.logger.WithError(err).Warn("failed to clear workflow context")
	}
	s.respondJSON(w, http.StatusOK, workflowResponse{Context: types.NewWorkflowContext()})
}

type registrationTypeInput struct {
	RegistrationType types.RegistrationType `json:"registrationType"`
}

func (s *Service) handlePutRegistrationType(w http.ResponseWriter, r *http.Request) {
	var input registrationTypeInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	switch input.RegistrationType {
	case types.RegistrationTypeIndividual, types.RegistrationTypeOrganization, types.RegistrationTypeLandAggregator:
	default:
		s.respondError(w, &types.ValidationError{Message: "unknown registration type"})
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)
	wctx.RegistrationType = input.RegistrationType

	if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, workflowResponse{Context: wctx})
}

func (s *Service) handlePutProjectDraft(w http.ResponseWriter, r *http.Request) {
	var input types.ProjectDraft
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	if input.Title == "" {
		s.respondError(w, &types.ValidationError{
			Message: "project title is required",
			Fields:  map[string]string{"title": "required"},
		})
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)

	input.SchemaVersion = types.WorkflowContextSchemaVersion
	wctx.Project = &input
	// A new local project invalidates everything downstream of it.
	wctx.Property = nil
	wctx.RemoteProjectID = ""
	wctx.RemotePropertyID = ""
	wctx.ServiceRequestID = ""

	if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, workflowResponse{Context: wctx})
}

func (s *Service) handlePutPropertyDraft(w http.ResponseWriter, r *http.Request) {
	var input types.PropertyDraft
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)

	if redirect, ok := workflow.Guard(workflow.StepCreateProperty, wctx); !ok {
		s.respondJSON(w, http.StatusConflict, map[string]string{"redirect": string(redirect)})
		return
	}

	if input.PropertyName == "" {
		s.respondError(w, &types.ValidationError{
			Message: "property name is required",
			Fields:  map[string]string{"propertyName": "required"},
		})
		return
	}

	input.SchemaVersion = types.WorkflowContextSchemaVersion
	wctx.Property = &input
	wctx.RemotePropertyID = ""
	wctx.ServiceRequestID = ""

	if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, workflowResponse{Context: wctx})
}

type mainServiceInput struct {
	ServiceID string `json:"serviceId"`
}

func (s *Service) handlePutMainService(w http.ResponseWriter, r *http.Request) {
	var input mainServiceInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	if _, ok := workflow.MainServiceByID(input.ServiceID); !ok {
		s.respondError(w, &types.NotFoundError{Entity: "service", ID: input.ServiceID})
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)

	if redirect, ok := workflow.Guard(workflow.StepServiceSelection, wctx); !ok {
		s.respondJSON(w, http.StatusConflict, map[string]string{"redirect": string(redirect)})
		return
	}

	wctx.MainService = input.ServiceID
	wctx.SubService = ""
	wctx.ServiceRequestID = ""

	if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, workflowResponse{Context: wctx})
}

type subServiceInput struct {
	SubService string `json:"subService"`
}

type subServiceResponse struct {
	Context        *types.WorkflowContext `json:"context"`
	ServiceRequest *types.ServiceRequest  `json:"serviceRequest"`
	Created        bool                   `json:"created"`
}

// handleSelectSubService is the reconciliation point: the locally drafted
// project and property become server records here, exactly once, and the
// service request is created or refreshed against them.
func (s *Service) handleSelectSubService(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	var input subServiceInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	draftID := s.draftSessionFromContext(r.Context())
	wctx := workflow.Load(r.Context(), s.drafts, draftID)

	if redirect, ok := workflow.Guard(workflow.StepSubService, wctx); !ok {
		s.respondJSON(w, http.StatusConflict, map[string]string{"redirect": string(redirect)})
		return
	}

	mainService, _ := workflow.MainServiceByID(wctx.MainService)
	if subs := workflow.SubServices(wctx.MainService); len(subs) > 0 && !workflow.ValidSubService(wctx.MainService, input.SubService) {
		s.respondError(w, &types.ValidationError{
			Message: "unknown sub-service for " + mainService.Label,
			Fields:  map[string]string{"subService": "unknown"},
		})
		return
	}

	if wctx.RemoteProjectID == "" && wctx.Project == nil {
		s.respondJSON(w, http.StatusConflict, map[string]string{"redirect": string(workflow.StepCreateProject)})
		return
	}
	if wctx.RemotePropertyID == "" && wctx.Property == nil {
		s.respondJSON(w, http.StatusConflict, map[string]string{"redirect": string(workflow.StepCreateProperty)})
		return
	}

	// Each server ID is persisted as soon as the create succeeds. A later
	// failure in the same request must not lose the ID: a retry would
	// re-enter the empty-ID branch and create a duplicate row.
	if wctx.RemoteProjectID == "" {
		project, err := s.gateway.CreateProject(r.Context(), sess.UserID, wctx.Project)
		if err != nil {
			s.respondError(w, err)
			return
		}
		wctx.RemoteProjectID = project.ID
		if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
			s.respondError(w, err)
			return
		}
	}

	if wctx.RemotePropertyID == "" {
		propertyDraft := wctx.Property
		propertyDraft.ProjectID = wctx.RemoteProjectID
		property, err := s.gateway.CreateProperty(r.Context(), sess.UserID, propertyDraft)
		if err != nil {
			s.respondError(w, err)
			return
		}
		wctx.RemotePropertyID = property.ID
		if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
			s.respondError(w, err)
			return
		}
	}

	request, created, err := s.gateway.UpsertServiceRequest(
		r.Context(),
		sess.UserID,
		wctx.RemoteProjectID,
		wctx.RemotePropertyID,
		mainService.Label,
		input.SubService,
	)
	if err != nil {
		s.respondError(w, err)
		return
	}

	wctx.SubService = input.SubService
	wctx.ServiceRequestID = request.ID

	if err := workflow.Save(r.Context(), s.drafts, draftID, wctx); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, subServiceResponse{
		Context:        wctx,
		ServiceRequest: request,
		Created:        created,
	})
}
