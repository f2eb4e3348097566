package server

import (
	"net/http"

	"edigivault/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListProjects(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	projects, err := s.gateway.Projects(r.Context(), sess.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, projects)
}

// handleCreateProject creates a project directly, outside the draft
// workflow. The dashboard's "new project" path lands here.
func (s *Service) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	var input types.ProjectDraft
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	project, err := s.gateway.CreateProject(r.Context(), sess.UserID, &input)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, project)
}

func (s *Service) handleListProperties(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	projectID := flow.Param(r.Context(), "projectID")

	properties, err := s.gateway.Properties(r.Context(), sess.UserID, projectID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, properties)
}

func (s *Service) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	var input types.PropertyDraft
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	property, err := s.gateway.CreateProperty(r.Context(), sess.UserID, &input)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, property)
}
