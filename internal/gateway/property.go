package gateway

import (
	"context"
	"strings"

	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/sirupsen/logrus"
)

// CreateProperty materializes a property draft under an existing project.
// The project must belong to the caller; a foreign or missing project
// surfaces as not found, never as a hint that it exists.
func (g *Gateway) CreateProperty(ctx context.Context, userID string, draft *types.PropertyDraft) (*types.Property, error) {
	if _, err := g.projects.ProjectByID(ctx, userID, draft.ProjectID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(draft.PropertyName)
	if name == "" {
		return nil, &types.ValidationError{
			Message: "property name is required",
			Fields:  map[string]string{"propertyName": "required"},
		}
	}

	addressShort := strings.TrimSpace(draft.AddressShort)
	if addressShort == "" {
		addressShort = FormatAddress(draft.Address)
	}

	address := draft.Address
	property := &types.Property{
		UserID:        userID,
		ProjectID:     draft.ProjectID,
		PropertyType:  draft.PropertyType,
		PropertyName:  name,
		AddressFields: &address,
		Latitude:      draft.Latitude,
		Longitude:     draft.Longitude,
	}
	if addressShort != "" {
		property.AddressShort = utils.StringPtr(addressShort)
	}
	if draft.SizeUnit != "" {
		property.SizeUnit = utils.StringPtr(draft.SizeUnit)
	}
	if draft.SizeValue > 0 {
		sizeValue := draft.SizeValue
		property.SizeValue = &sizeValue
	}

	if err := g.properties.CreateProperty(ctx, property); err != nil {
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"project_id":  property.ProjectID,
		"property_id": property.ID,
	}).Info("property created")

	return property, nil
}

func (g *Gateway) Properties(ctx context.Context, userID, projectID string) ([]*types.Property, error) {
	return g.properties.PropertiesByProject(ctx, userID, projectID)
}

func (g *Gateway) Property(ctx context.Context, userID, propertyID string) (*types.Property, error) {
	return g.properties.PropertyByID(ctx, userID, propertyID)
}
