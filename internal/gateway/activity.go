package gateway

import (
	"context"

	"edigivault/pkg/types"
)

func (g *Gateway) Activities(ctx context.Context, userID string) ([]*types.Activity, error) {
	return g.activities.ActivitiesByUser(ctx, userID)
}

func (g *Gateway) Transactions(ctx context.Context, userID string) ([]*types.Transaction, error) {
	return g.transactions.TransactionsByUser(ctx, userID)
}

// RecordPayment writes the transaction row for a completed (simulated)
// charge payment, denormalizing the project and property names the way the
// transactions screen displays them.
func (g *Gateway) RecordPayment(ctx context.Context, userID, requestID string, charge Charge) (*types.Transaction, error) {
	request, err := g.requests.ServiceRequestByID(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	transaction := &types.Transaction{
		UserID: userID,
		Item:   charge.Label,
	}

	if project, err := g.projects.ProjectByID(ctx, userID, request.ProjectID); err == nil {
		transaction.ProjectName = &project.Title
	}
	if property, err := g.properties.PropertyByID(ctx, userID, request.PropertyID); err == nil {
		transaction.PropertyName = &property.PropertyName
	}

	status := "paid"
	transaction.Status = &status

	if err := g.transactions.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}
