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

const serviceRequestTableName = "edigivault.service_requests"

var serviceRequestColumns = utils.StructTagValues(types.ServiceRequest{})

type ServiceRequestRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRequestRepository(pool *pgxpool.Pool) *ServiceRequestRepository {
	return &ServiceRequestRepository{pool: pool}
}

func (r *ServiceRequestRepository) ServiceRequestByID(ctx context.Context, userID, requestID string) (*types.ServiceRequest, error) {

	query, args, err := psql().Select(serviceRequestColumns...).From(serviceRequestTableName).
		Where(sq.Eq{"id": requestID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate service request query: %w", err)
	}

	var request = new(types.ServiceRequest)
	err = pgxscan.Get(ctx, r.pool, request, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "service request", ID: requestID}
	}

	return request, nil
}

// ServiceRequestByNaturalKey looks up the single row identified by the
// business key (user, project, property, main service). Uniqueness of the
// tuple is maintained by lookup-then-write in the gateway, not by the store.
func (r *ServiceRequestRepository) ServiceRequestByNaturalKey(ctx context.Context, userID, projectID, propertyID, mainService string) (*types.ServiceRequest, error) {

	query, args, err := psql().Select(serviceRequestColumns...).From(serviceRequestTableName).
		Where(sq.Eq{
			"user_id":      userID,
			"project_id":   projectID,
			"property_id":  propertyID,
			"main_service": mainService,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate service request lookup query: %w", err)
	}

	var request = new(types.ServiceRequest)
	err = pgxscan.Get(ctx, r.pool, request, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "service request"}
	}

	return request, nil
}

func (r *ServiceRequestRepository) CreateServiceRequest(ctx context.Context, request *types.ServiceRequest) error {

	now := time.Now()
	if request.ID == "" {
		request.ID = utils.NanoID()
	}
	request.CreatedAt = now
	request.UpdatedAt = now

	query, args, err := psql().Insert(serviceRequestTableName).
		SetMap(utils.StructToMap(request)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert service request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create service request")

}

func (r *ServiceRequestRepository) UpdateServiceRequest(ctx context.Context, request *types.ServiceRequest) error {

	request.UpdatedAt = time.Now()

	query, args, err := psql().Update(serviceRequestTableName).
		SetMap(utils.StructToMap(request)).
		Where(sq.Eq{"id": request.ID, "user_id": request.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update service request query for %s: %w", request.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update service request")

}
