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

const propertyTableName = "edigivault.properties"

var propertyColumns = utils.StructTagValues(types.Property{})

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

func (r *PropertyRepository) PropertyByID(ctx context.Context, userID, propertyID string) (*types.Property, error) {

	query, args, err := psql().Select(propertyColumns...).From(propertyTableName).
		Where(sq.Eq{"id": propertyID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate property query: %w", err)
	}

	var property = new(types.Property)
	err = pgxscan.Get(ctx, r.pool, property, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "property", ID: propertyID}
	}

	return property, nil
}

func (r *PropertyRepository) PropertiesByProject(ctx context.Context, userID, projectID string) ([]*types.Property, error) {

	query, args, err := psql().Select(propertyColumns...).From(propertyTableName).
		Where(sq.Eq{"user_id": userID, "project_id": projectID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate properties query: %w", err)
	}

	var properties = make([]*types.Property, 0)
	err = pgxscan.Select(ctx, r.pool, &properties, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return properties, nil
}

func (r *PropertyRepository) CreateProperty(ctx context.Context, property *types.Property) error {

	if property.ID == "" {
		property.ID = utils.NanoID()
	}
	property.CreatedAt = time.Now()

	query, args, err := psql().Insert(propertyTableName).
		SetMap(utils.StructToMap(property)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert property query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create property")

}
