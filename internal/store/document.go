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

const documentTableName = "edigivault.documents"

var documentColumns = utils.StructTagValues(types.Document{})

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) DocumentByID(ctx context.Context, userID, documentID string) (*types.Document, error) {

	query, args, err := psql().Select(documentColumns...).From(documentTableName).
		Where(sq.Eq{"id": documentID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document query: %w", err)
	}

	var doc = new(types.Document)
	err = pgxscan.Get(ctx, r.pool, doc, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "document", ID: documentID}
	}

	return doc, nil
}

// DocumentByName fetches the single row for a document slot. There is never
// more than one row per (service request, name).
func (r *DocumentRepository) DocumentByName(ctx context.Context, userID, serviceRequestID, docName string) (*types.Document, error) {

	query, args, err := psql().Select(documentColumns...).From(documentTableName).
		Where(sq.Eq{
			"user_id":            userID,
			"service_request_id": serviceRequestID,
			"doc_name":           docName,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document lookup query: %w", err)
	}

	var doc = new(types.Document)
	err = pgxscan.Get(ctx, r.pool, doc, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, &types.NotFoundError{Entity: "document", ID: docName}
	}

	return doc, nil
}

func (r *DocumentRepository) DocumentsByServiceRequest(ctx context.Context, userID, serviceRequestID string) ([]*types.Document, error) {

	query, args, err := psql().Select(documentColumns...).From(documentTableName).
		Where(sq.Eq{"user_id": userID, "service_request_id": serviceRequestID}).
		OrderBy("created_at asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate documents query: %w", err)
	}

	var docs = make([]*types.Document, 0)
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *types.Document) error {

	if doc.ID == "" {
		doc.ID = utils.NanoID()
	}
	doc.CreatedAt = time.Now()

	query, args, err := psql().Insert(documentTableName).
		SetMap(utils.StructToMap(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert document query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create document")

}

func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *types.Document) error {

	query, args, err := psql().Update(documentTableName).
		SetMap(utils.StructToMap(doc)).
		Where(sq.Eq{"id": doc.ID, "service_request_id": doc.ServiceRequestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update document query for %s: %w", doc.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update document")

}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, userID, documentID string) error {

	query, args, err := psql().Delete(documentTableName).
		Where(sq.Eq{"id": documentID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete document query for %s: %w", documentID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete document")

}
