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

const activityTableName = "edigivault.activities"

var activityColumns = utils.StructTagValues(types.Activity{})

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) ActivitiesByUser(ctx context.Context, userID string) ([]*types.Activity, error) {

	query, args, err := psql().Select(activityColumns...).From(activityTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate activities query: %w", err)
	}

	var activities = make([]*types.Activity, 0)
	err = pgxscan.Select(ctx, r.pool, &activities, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	return activities, nil
}

// ActivityByRelated finds the dashboard record tracking a given source
// entity, so status transitions refresh one row instead of appending.
func (r *ActivityRepository) ActivityByRelated(ctx context.Context, userID, relatedType, relatedID string) (*types.Activity, error) {

	query, args, err := psql().Select(activityColumns...).From(activityTableName).
		Where(sq.Eq{
			"user_id":      userID,
			"related_type": relatedType,
			"related_id":   relatedID,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate activity lookup query: %w", err)
	}

	var activity = new(types.Activity)
	err = pgxscan.Get(ctx, r.pool, activity, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "activity"}
	}

	return activity, nil
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *types.Activity) error {

	now := time.Now()
	if activity.ID == "" {
		activity.ID = utils.NanoID()
	}
	if activity.Date.IsZero() {
		activity.Date = now
	}
	activity.CreatedAt = now

	query, args, err := psql().Insert(activityTableName).
		SetMap(utils.StructToMap(activity)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert activity query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create activity")

}

func (r *ActivityRepository) UpdateActivity(ctx context.Context, activity *types.Activity) error {

	query, args, err := psql().Update(activityTableName).
		SetMap(utils.StructToMap(activity)).
		Where(sq.Eq{"id": activity.ID, "user_id": activity.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update activity query for %s: %w", activity.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update activity")

}
