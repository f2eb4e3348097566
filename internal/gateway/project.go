package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"edigivault/internal/utils"
	"edigivault/pkg/types"
)

// CreateProject materializes a project draft as a server record. The title
// is the only mandatory field.
func (g *Gateway) CreateProject(ctx context.Context, ownerID string, draft *types.ProjectDraft) (*types.Project, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, &types.ValidationError{
			Message: "project title is required",
			Fields:  map[string]string{"title": "required"},
		}
	}

	project := &types.Project{
		OwnerID:  ownerID,
		Title:    title,
		PRNumber: utils.StringPtr(newPRNumber()),
	}
	if desc := strings.TrimSpace(draft.Description); desc != "" {
		project.Description = utils.StringPtr(desc)
	}

	if err := g.projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	g.logger.WithField("project_id", project.ID).Info("project created")

	return project, nil
}

func (g *Gateway) Projects(ctx context.Context, ownerID string) ([]*types.Project, error) {
	return g.projects.ProjectsByOwner(ctx, ownerID)
}

func (g *Gateway) Project(ctx context.Context, ownerID, projectID string) (*types.Project, error) {
	return g.projects.ProjectByID(ctx, ownerID, projectID)
}

// newPRNumber builds the human-facing project reference shown on charge
// and summary screens.
func newPRNumber() string {
	return fmt.Sprintf("PR-%d-%06d", time.Now().Year(), rand.IntN(1_000_000))
}
