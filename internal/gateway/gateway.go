// Package gateway implements the document collection workflow's write
// operations. Every mutation is ownership-checked and resolves to one of
// the error categories in pkg/types.
package gateway

import (
	"context"

	"edigivault/internal/storage"
	"edigivault/pkg/types"

	"github.com/sirupsen/logrus"
)

type ProjectStore interface {
	ProjectByID(ctx context.Context, ownerID, projectID string) (*types.Project, error)
	ProjectsByOwner(ctx context.Context, ownerID string) ([]*types.Project, error)
	CreateProject(ctx context.Context, project *types.Project) error
}

type PropertyStore interface {
	PropertyByID(ctx context.Context, userID, propertyID string) (*types.Property, error)
	PropertiesByProject(ctx context.Context, userID, projectID string) ([]*types.Property, error)
	CreateProperty(ctx context.Context, property *types.Property) error
}

type ServiceRequestStore interface {
	ServiceRequestByID(ctx context.Context, userID, requestID string) (*types.ServiceRequest, error)
	ServiceRequestByNaturalKey(ctx context.Context, userID, projectID, propertyID, mainService string) (*types.ServiceRequest, error)
	CreateServiceRequest(ctx context.Context, request *types.ServiceRequest) error
	UpdateServiceRequest(ctx context.Context, request *types.ServiceRequest) error
}

type DocumentStore interface {
	DocumentByID(ctx context.Context, userID, documentID string) (*types.Document, error)
	DocumentByName(ctx context.Context, userID, serviceRequestID, docName string) (*types.Document, error)
	DocumentsByServiceRequest(ctx context.Context, userID, serviceRequestID string) ([]*types.Document, error)
	CreateDocument(ctx context.Context, doc *types.Document) error
	UpdateDocument(ctx context.Context, doc *types.Document) error
	DeleteDocument(ctx context.Context, userID, documentID string) error
}

type ActivityStore interface {
	ActivitiesByUser(ctx context.Context, userID string) ([]*types.Activity, error)
	ActivityByRelated(ctx context.Context, userID, relatedType, relatedID string) (*types.Activity, error)
	CreateActivity(ctx context.Context, activity *types.Activity) error
	UpdateActivity(ctx context.Context, activity *types.Activity) error
}

type TransactionStore interface {
	TransactionsByUser(ctx context.Context, userID string) ([]*types.Transaction, error)
	CreateTransaction(ctx context.Context, transaction *types.Transaction) error
}

type ProfileStore interface {
	ProfileByID(ctx context.Context, userID string) (*types.Profile, error)
	CreateProfile(ctx context.Context, profile *types.Profile) error
	UpdateProfile(ctx context.Context, profile *types.Profile) error
}

type Gateway struct {
	logger *logrus.Logger

	projects     ProjectStore
	properties   PropertyStore
	requests     ServiceRequestStore
	documents    DocumentStore
	activities   ActivityStore
	transactions TransactionStore
	profiles     ProfileStore

	storage storage.ObjectStorage
}

func New(
	logger *logrus.Logger,
	projects ProjectStore,
	properties PropertyStore,
	requests ServiceRequestStore,
	documents DocumentStore,
	activities ActivityStore,
	transactions TransactionStore,
	profiles ProfileStore,
	objectStorage storage.ObjectStorage,
) *Gateway {
	return &Gateway{
		logger:       logger,
		projects:     projects,
		properties:   properties,
		requests:     requests,
		documents:    documents,
		activities:   activities,
		transactions: transactions,
		profiles:     profiles,
		storage:      objectStorage,
	}
}
