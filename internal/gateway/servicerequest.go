package gateway

import (
	"context"
	"errors"
	"fmt"

	"edigivault/internal/checklist"
	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/sirupsen/logrus"
)

// UpsertServiceRequest resolves the service request for a (project,
// property, main service) tuple, creating it on first selection and
// refreshing the sub-service on repeat visits. The returned flag reports
// whether a new record was created.
func (g *Gateway) UpsertServiceRequest(ctx context.Context, userID, projectID, propertyID, mainService, subService string) (*types.ServiceRequest, bool, error) {
	if _, err := g.projects.ProjectByID(ctx, userID, projectID); err != nil {
		return nil, false, err
	}
	if _, err := g.properties.PropertyByID(ctx, userID, propertyID); err != nil {
		return nil, false, err
	}

	existing, err := g.requests.ServiceRequestByNaturalKey(ctx, userID, projectID, propertyID, mainService)

	var notFound *types.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, false, err
	}

	if existing != nil && err == nil {
		existing.SubService = utils.StringPtr(subService)
		if err := g.requests.UpdateServiceRequest(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	request := &types.ServiceRequest{
		UserID:      userID,
		ProjectID:   projectID,
		PropertyID:  propertyID,
		MainService: mainService,
		SubService:  utils.StringPtr(subService),
		Status:      types.ServiceRequestStatusDraft,
	}
	if err := g.requests.CreateServiceRequest(ctx, request); err != nil {
		return nil, false, err
	}

	g.logger.WithFields(logrus.Fields{
		"service_request_id": request.ID,
		"main_service":       mainService,
	}).Info("service request created")

	return request, true, nil
}

func (g *Gateway) ServiceRequest(ctx context.Context, userID, requestID string) (*types.ServiceRequest, error) {
	return g.requests.ServiceRequestByID(ctx, userID, requestID)
}

// SaveDraft persists progress without submitting. The dashboard activity is
// refreshed so partially completed requests stay visible.
func (g *Gateway) SaveDraft(ctx context.Context, userID, requestID string) (*types.ServiceRequest, error) {
	request, err := g.requests.ServiceRequestByID(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	request.Status = types.ServiceRequestStatusDraft
	if err := g.requests.UpdateServiceRequest(ctx, request); err != nil {
		return nil, err
	}

	if err := g.refreshActivity(ctx, request); err != nil {
		g.logger.WithError(err).Warn("failed to refresh activity for draft")
	}

	return request, nil
}

// SubmitServiceRequest moves a request to submitted. Unless skipValidation
// is set, every required document must be uploaded or marked not-available.
func (g *Gateway) SubmitServiceRequest(ctx context.Context, userID, requestID string, skipValidation bool) (*types.ServiceRequest, error) {
	request, err := g.requests.ServiceRequestByID(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	if !skipValidation {
		documents, err := g.documents.DocumentsByServiceRequest(ctx, userID, requestID)
		if err != nil {
			return nil, err
		}

		required := checklist.RequiredDocuments(utils.Deref(request.SubService))
		if missing := checklist.Missing(required, documents); len(missing) > 0 {
			return nil, &types.ValidationError{
				Message:          "required documents are incomplete",
				MissingDocuments: missing,
			}
		}
	}

	request.Status = types.ServiceRequestStatusSubmitted
	if err := g.requests.UpdateServiceRequest(ctx, request); err != nil {
		return nil, err
	}

	if err := g.refreshActivity(ctx, request); err != nil {
		g.logger.WithError(err).Warn("failed to refresh activity for submission")
	}

	g.logger.WithField("service_request_id", request.ID).Info("service request submitted")

	return request, nil
}

// refreshActivity creates or updates the single dashboard record tracking
// this request. Save and submit both land here so the dashboard never grows
// duplicate rows for one request.
func (g *Gateway) refreshActivity(ctx context.Context, request *types.ServiceRequest) error {
	property, err := g.properties.PropertyByID(ctx, request.UserID, request.PropertyID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s - %s", request.MainService, property.PropertyName)

	existing, err := g.activities.ActivityByRelated(ctx, request.UserID, types.RelatedTypeServiceRequest, request.ID)

	var notFound *types.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}

	if existing != nil && err == nil {
		existing.Title = title
		existing.Status = types.ActivityStatusPending
		return g.activities.UpdateActivity(ctx, existing)
	}

	return g.activities.CreateActivity(ctx, &types.Activity{
		UserID:      request.UserID,
		Title:       title,
		Status:      types.ActivityStatusPending,
		RelatedType: utils.StringPtr(types.RelatedTypeServiceRequest),
		RelatedID:   utils.StringPtr(request.ID),
	})
}
