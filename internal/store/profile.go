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

const profileTableName = "edigivault.profiles"

var profileColumns = utils.StructTagValues(types.Profile{})

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// ProfileByID fetches the profile row keyed by the auth provider's user ID.
func (r *ProfileRepository) ProfileByID(ctx context.Context, userID string) (*types.Profile, error) {

	query, args, err := psql().Select(profileColumns...).From(profileTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile query: %w", err)
	}

	var profile = new(types.Profile)
	err = pgxscan.Get(ctx, r.pool, profile, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "profile", ID: userID}
	}

	return profile, nil
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *types.Profile) error {

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query, args, err := psql().Insert(profileTableName).
		SetMap(utils.StructToMap(profile)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert profile query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create profile")

}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *types.Profile) error {

	profile.UpdatedAt = time.Now()

	query, args, err := psql().Update(profileTableName).
		SetMap(utils.StructToMap(profile)).
		Where(sq.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update profile query for %s: %w", profile.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update profile")

}
