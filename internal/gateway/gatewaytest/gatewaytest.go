// Package gatewaytest provides in-memory implementations of the gateway's
// store and storage interfaces for tests that need the full write path
// without a database.
package gatewaytest

import (
	"context"
	"fmt"
	"time"

	"edigivault/internal/utils"
	"edigivault/pkg/types"
)

// Store implements every gateway store interface over plain maps. The maps
// and failure knobs are exported so tests can seed rows and inject faults.
type Store struct {
	Projects     map[string]*types.Project
	Properties   map[string]*types.Property
	Requests     map[string]*types.ServiceRequest
	Documents    map[string]*types.Document
	Activities   map[string]*types.Activity
	Transactions []*types.Transaction
	Profiles     map[string]*types.Profile

	// When set, the matching create returns the error instead of writing.
	FailCreateProject  error
	FailCreateProperty error
}

func NewStore() *Store {
	return &Store{
		Projects:   make(map[string]*types.Project),
		Properties: make(map[string]*types.Property),
		Requests:   make(map[string]*types.ServiceRequest),
		Documents:  make(map[string]*types.Document),
		Activities: make(map[string]*types.Activity),
		Profiles:   make(map[string]*types.Profile),
	}
}

func (m *Store) ProjectByID(_ context.Context, ownerID, projectID string) (*types.Project, error) {
	project, ok := m.Projects[projectID]
	if !ok || project.OwnerID != ownerID {
		return nil, &types.NotFoundError{Entity: "project", ID: projectID}
	}
	return project, nil
}

func (m *Store) ProjectsByOwner(_ context.Context, ownerID string) ([]*types.Project, error) {
	var out []*types.Project
	for _, project := range m.Projects {
		if project.OwnerID == ownerID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (m *Store) CreateProject(_ context.Context, project *types.Project) error {
	if m.FailCreateProject != nil {
		return m.FailCreateProject
	}
	if project.ID == "" {
		project.ID = utils.NanoID()
	}
	project.CreatedAt = time.Now()
	m.Projects[project.ID] = project
	return nil
}

func (m *Store) PropertyByID(_ context.Context, userID, propertyID string) (*types.Property, error) {
	property, ok := m.Properties[propertyID]
	if !ok || property.UserID != userID {
		return nil, &types.NotFoundError{Entity: "property", ID: propertyID}
	}
	return property, nil
}

func (m *Store) PropertiesByProject(_ context.Context, userID, projectID string) ([]*types.Property, error) {
	var out []*types.Property
	for _, property := range m.Properties {
		if property.UserID == userID && property.ProjectID == projectID {
			out = append(out, property)
		}
	}
	return out, nil
}

func (m *Store) CreateProperty(_ context.Context, property *types.Property) error {
	if m.FailCreateProperty != nil {
		return m.FailCreateProperty
	}
	if property.ID == "" {
		property.ID = utils.NanoID()
	}
	property.CreatedAt = time.Now()
	m.Properties[property.ID] = property
	return nil
}

func (m *Store) ServiceRequestByID(_ context.Context, userID, requestID string) (*types.ServiceRequest, error) {
	request, ok := m.Requests[requestID]
	if !ok || request.UserID != userID {
		return nil, &types.NotFoundError{Entity: "service request", ID: requestID}
	}
	return request, nil
}

func (m *Store) ServiceRequestByNaturalKey(_ context.Context, userID, projectID, propertyID, mainService string) (*types.ServiceRequest, error) {
	for _, request := range m.Requests {
		if request.UserID == userID && request.ProjectID == projectID &&
			request.PropertyID == propertyID && request.MainService == mainService {
			return request, nil
		}
	}
	return nil, &types.NotFoundError{Entity: "service request"}
}

func (m *Store) CreateServiceRequest(_ context.Context, request *types.ServiceRequest) error {
	if request.ID == "" {
		request.ID = utils.NanoID()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	m.Requests[request.ID] = request
	return nil
}

func (m *Store) UpdateServiceRequest(_ context.Context, request *types.ServiceRequest) error {
	request.UpdatedAt = time.Now()
	m.Requests[request.ID] = request
	return nil
}

func (m *Store) DocumentByID(_ context.Context, userID, documentID string) (*types.Document, error) {
	doc, ok := m.Documents[documentID]
	if !ok || doc.UserID != userID {
		return nil, &types.NotFoundError{Entity: "document", ID: documentID}
	}
	return doc, nil
}

func (m *Store) DocumentByName(_ context.Context, userID, serviceRequestID, docName string) (*types.Document, error) {
	for _, doc := range m.Documents {
		if doc.UserID == userID && doc.ServiceRequestID == serviceRequestID && doc.DocName == docName {
			return doc, nil
		}
	}
	return nil, &types.NotFoundError{Entity: "document", ID: docName}
}

func (m *Store) DocumentsByServiceRequest(_ context.Context, userID, serviceRequestID string) ([]*types.Document, error) {
	var out []*types.Document
	for _, doc := range m.Documents {
		if doc.UserID == userID && doc.ServiceRequestID == serviceRequestID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Store) CreateDocument(_ context.Context, doc *types.Document) error {
	if doc.ID == "" {
		doc.ID = utils.NanoID()
	}
	doc.CreatedAt = time.Now()
	m.Documents[doc.ID] = doc
	return nil
}

func (m *Store) UpdateDocument(_ context.Context, doc *types.Document) error {
	m.Documents[doc.ID] = doc
	return nil
}

func (m *Store) DeleteDocument(_ context.Context, userID, documentID string) error {
	doc, ok := m.Documents[documentID]
	if ok && doc.UserID == userID {
		delete(m.Documents, documentID)
	}
	return nil
}

func (m *Store) ActivitiesByUser(_ context.Context, userID string) ([]*types.Activity, error) {
	var out []*types.Activity
	for _, activity := range m.Activities {
		if activity.UserID == userID {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (m *Store) ActivityByRelated(_ context.Context, userID, relatedType, relatedID string) (*types.Activity, error) {
	for _, activity := range m.Activities {
		if activity.UserID == userID &&
			utils.Deref(activity.RelatedType) == relatedType &&
			utils.Deref(activity.RelatedID) == relatedID {
			return activity, nil
		}
	}
	return nil, &types.NotFoundError{Entity: "activity"}
}

func (m *Store) CreateActivity(_ context.Context, activity *types.Activity) error {
	if activity.ID == "" {
		activity.ID = utils.NanoID()
	}
	now := time.Now()
	if activity.Date.IsZero() {
		activity.Date = now
	}
	activity.CreatedAt = now
	m.Activities[activity.ID] = activity
	return nil
}

func (m *Store) UpdateActivity(_ context.Context, activity *types.Activity) error {
	m.Activities[activity.ID] = activity
	return nil
}

func (m *Store) TransactionsByUser(_ context.Context, userID string) ([]*types.Transaction, error) {
	var out []*types.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			out = append(out, transaction)
		}
	}
	return out, nil
}

func (m *Store) CreateTransaction(_ context.Context, transaction *types.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = utils.NanoID()
	}
	transaction.CreatedAt = time.Now()
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *Store) ProfileByID(_ context.Context, userID string) (*types.Profile, error) {
	profile, ok := m.Profiles[userID]
	if !ok {
		return nil, &types.NotFoundError{Entity: "profile", ID: userID}
	}
	return profile, nil
}

func (m *Store) CreateProfile(_ context.Context, profile *types.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	m.Profiles[profile.ID] = profile
	return nil
}

func (m *Store) UpdateProfile(_ context.Context, profile *types.Profile) error {
	profile.UpdatedAt = time.Now()
	m.Profiles[profile.ID] = profile
	return nil
}

// Storage records uploads in memory and can be told to fail.
type Storage struct {
	Objects map[string][]byte
	Deleted []string
	Fail    bool
}

func NewStorage() *Storage {
	return &Storage{Objects: make(map[string][]byte)}
}

func (m *Storage) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	if m.Fail {
		return "", fmt.Errorf("storage unavailable")
	}
	m.Objects[path] = data
	return "https://storage.test/" + path, nil
}

func (m *Storage) Delete(_ context.Context, path string) error {
	if m.Fail {
		return fmt.Errorf("storage unavailable")
	}
	delete(m.Objects, path)
	m.Deleted = append(m.Deleted, path)
	return nil
}
