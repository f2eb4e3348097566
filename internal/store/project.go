package store

import (
	"context"
	"fmt"
	"time"

	"edigivault/internal/utils"
	"edigivault/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectTableName = "edigivault.projects"

var projectColumns = utils.StructTagValues(types.Project{})

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// ProjectByID fetches a project scoped by owner; a row owned by someone else
// is indistinguishable from a missing one.
func (r *ProjectRepository) ProjectByID(ctx context.Context, ownerID, projectID string) (*types.Project, error) {

	query, args, err := psql().Select(projectColumns...).From(projectTableName).
		Where(sq.Eq{"id": projectID, "owner_id": ownerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate project query: %w", err)
	}

	var project = new(types.Project)
	err = pgxscan.Get(ctx, r.pool, project, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "project", ID: projectID}
	}

	return project, nil
}

func (r *ProjectRepository) ProjectsByOwner(ctx context.Context, ownerID string) ([]*types.Project, error) {

	query, args, err := psql().Select(projectColumns...).From(projectTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate projects query: %w", err)
	}

	var projects = make([]*types.Project, 0)
	err = pgxscan.Select(ctx, r.pool, &projects, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *types.Project) error {

	if project.ID == "" {
		project.ID = utils.NanoID()
	}
	project.CreatedAt = time.Now()

	query, args, err := psql().Insert(projectTableName).
		SetMap(utils.StructToMap(project)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert project query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create project")

}
