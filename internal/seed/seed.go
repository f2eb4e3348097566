// Package seed loads development fixtures: a project, a property and a
// draft service request with its pending checklist rows.
package seed

import (
	"context"
	"fmt"

	"edigivault/internal/checklist"
	"edigivault/internal/gateway"
	"edigivault/internal/store"
	"edigivault/internal/utils"
	"edigivault/pkg/types"
)

type Fixtures struct {
	Project        *types.Project
	Property       *types.Property
	ServiceRequest *types.ServiceRequest
	Documents      []*types.Document
}

// SeedDemo creates a complete in-progress workflow for the given user so a
// fresh environment has something on the dashboard.
func SeedDemo(
	ctx context.Context,
	userID string,
	projects *store.ProjectRepository,
	properties *store.PropertyRepository,
	requests *store.ServiceRequestRepository,
	documents *store.DocumentRepository,
) (*Fixtures, error) {
	project := &types.Project{
		OwnerID:     userID,
		Title:       "Hebbal Residential Plot",
		Description: utils.StringPtr("Khata registration for the Hebbal plot"),
		PRNumber:    utils.StringPtr("PR-2026-000001"),
	}
	if err := projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to seed project: %w", err)
	}

	address := types.AddressFields{
		DoorNo:   "12/4",
		MainRoad: "Outer Ring Road",
		AreaName: "Hebbal",
		Taluk:    "Bangalore North",
		District: "Bangalore Urban",
		State:    "Karnataka",
		Pincode:  "560024",
		AreaType: types.AreaTypeUrban,
	}
	property := &types.Property{
		UserID:        userID,
		ProjectID:     project.ID,
		PropertyType:  "residential",
		PropertyName:  "Hebbal Plot 12/4",
		AddressShort:  utils.StringPtr(gateway.FormatAddress(address)),
		AddressFields: &address,
	}
	if err := properties.CreateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to seed property: %w", err)
	}

	subService := "New E-Katha Registration"
	request := &types.ServiceRequest{
		UserID:      userID,
		ProjectID:   project.ID,
		PropertyID:  property.ID,
		MainService: "E-katha",
		SubService:  utils.StringPtr(subService),
		Status:      types.ServiceRequestStatusDraft,
	}
	if err := requests.CreateServiceRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to seed service request: %w", err)
	}

	fixtures := &Fixtures{
		Project:        project,
		Property:       property,
		ServiceRequest: request,
	}

	for _, name := range checklist.RequiredDocuments(subService) {
		doc := &types.Document{
			UserID:           userID,
			ServiceRequestID: request.ID,
			DocGroup:         types.DocGroupRequired,
			DocName:          name,
			Status:           types.DocStatusPending,
		}
		if err := documents.CreateDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to seed document %q: %w", name, err)
		}
		fixtures.Documents = append(fixtures.Documents, doc)
	}

	return fixtures, nil
}
