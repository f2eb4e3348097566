package server

import (
	"io"
	"net/http"

	"edigivault/internal/checklist"
	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/alexedwards/flow"
)

// maxUploadBytes caps a single document file at 10MB.
const maxUploadBytes = 10 << 20

func (s *Service) handleGetServiceRequest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")

	request, err := s.gateway.ServiceRequest(r.Context(), sess.UserID, requestID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, request)
}

type checklistEntry struct {
	Name string `json:"name"`
	checklist.DocStatus
}

type checklistResponse struct {
	CommonDocuments   []checklistEntry `json:"commonDocuments"`
	RequiredDocuments []checklistEntry `json:"requiredDocuments"`
	Complete          bool             `json:"complete"`
}

func (s *Service) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")

	request, err := s.gateway.ServiceRequest(r.Context(), sess.UserID, requestID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	documents, err := s.gateway.Documents(r.Context(), sess.UserID, requestID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	required := checklist.RequiredDocuments(utils.Deref(request.SubService))

	response := checklistResponse{
		CommonDocuments:   make([]checklistEntry, 0, len(checklist.CommonDocuments())),
		RequiredDocuments: make([]checklistEntry, 0, len(required)),
		Complete:          checklist.IsComplete(required, documents),
	}
	for _, name := range checklist.CommonDocuments() {
		response.CommonDocuments = append(response.CommonDocuments, checklistEntry{
			Name:      name,
			DocStatus: checklist.Status(name, documents),
		})
	}
	for _, name := range required {
		response.RequiredDocuments = append(response.RequiredDocuments, checklistEntry{
			Name:      name,
			DocStatus: checklist.Status(name, documents),
		})
	}

	s.respondJSON(w, http.StatusOK, response)
}

type uploadDocumentForm struct {
	DocName  string `form:"docName"`
	DocGroup string `form:"docGroup"`
}

func (s *Service) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, &types.ValidationError{Message: "invalid multipart request"})
		return
	}

	var input uploadDocumentForm
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.respondError(w, &types.ValidationError{Message: "invalid form fields"})
		return
	}

	if input.DocName == "" {
		s.respondError(w, &types.ValidationError{
			Message: "document name is required",
			Fields:  map[string]string{"docName": "required"},
		})
		return
	}

	group := types.DocumentGroup(input.DocGroup)
	switch group {
	case types.DocGroupCommon, types.DocGroupRequired, types.DocGroupOther:
	case "":
		group = types.DocGroupRequired
	default:
		s.respondError(w, &types.ValidationError{Message: "unknown document group"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, &types.ValidationError{
			Message: "a file is required",
			Fields:  map[string]string{"file": "required"},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		s.respondError(w, &types.ValidationError{Message: "failed to read file"})
		return
	}
	if len(data) > maxUploadBytes {
		s.respondError(w, &types.ValidationError{Message: "file exceeds the 10MB limit"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := s.gateway.UploadDocument(r.Context(), sess.UserID, requestID, group, input.DocName, header.Filename, contentType, data)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, doc)
}

type notAvailableInput struct {
	DocName      string              `json:"docName"`
	DocGroup     types.DocumentGroup `json:"docGroup"`
	NotAvailable bool                `json:"notAvailable"`
}

func (s *Service) handleSetNotAvailable(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")

	var input notAvailableInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	if input.DocName == "" {
		s.respondError(w, &types.ValidationError{
			Message: "document name is required",
			Fields:  map[string]string{"docName": "required"},
		})
		return
	}

	doc, err := s.gateway.SetNotAvailable(r.Context(), sess.UserID, requestID, input.DocName, input.DocGroup, input.NotAvailable)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Service) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	documentID := flow.Param(r.Context(), "documentID")

	if err := s.gateway.DeleteDocument(r.Context(), sess.UserID, documentID); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Service) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")

	request, err := s.gateway.SaveDraft(r.Context(), sess.UserID, requestID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, request)
}

type submitInput struct {
	SkipValidation bool `json:"skipValidation"`
}

func (s *Service) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	requestID := flow.Param(r.Context(), "requestID")

	var input submitInput
	if r.ContentLength > 0 {
		if err := s.decodeJSON(r, &input); err != nil {
			s.respondError(w, err)
			return
		}
	}

	request, err := s.gateway.SubmitServiceRequest(r.Context(), sess.UserID, requestID, input.SkipValidation)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, request)
}
