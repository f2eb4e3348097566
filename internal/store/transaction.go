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

const transactionTableName = "edigivault.transactions"

var transactionColumns = utils.StructTagValues(types.Transaction{})

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) TransactionsByUser(ctx context.Context, userID string) ([]*types.Transaction, error) {

	query, args, err := psql().Select(transactionColumns...).From(transactionTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transactions query: %w", err)
	}

	var transactions = make([]*types.Transaction, 0)
	err = pgxscan.Select(ctx, r.pool, &transactions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, transaction *types.Transaction) error {

	if transaction.ID == "" {
		transaction.ID = utils.NanoID()
	}
	transaction.CreatedAt = time.Now()

	query, args, err := psql().Insert(transactionTableName).
		SetMap(utils.StructToMap(transaction)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert transaction query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create transaction")

}
