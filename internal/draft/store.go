// Package draft holds in-progress workflow entities between otherwise
// stateless screen transitions. Storage is best-effort and session-scoped:
// callers must tolerate any key vanishing and redirect to an earlier step.
package draft

import (
	"context"
	"fmt"
)

// Well-known keys. The workflow context is the only cross-screen record;
// the payment keys are written by the placeholder charge flow.
const (
	KeyWorkflowContext = "workflow_context"
)

func PaymentStatusKey(serviceRequestID string) string {
	return fmt.Sprintf("payment_status:%s", serviceRequestID)
}

func ChargeConsentKey(serviceRequestID string) string {
	return fmt.Sprintf("charges_consent:%s", serviceRequestID)
}

func ChargeTypeKey(serviceRequestID string) string {
	return fmt.Sprintf("charge_type:%s", serviceRequestID)
}

func PaymentStageKey(serviceRequestID string) string {
	return fmt.Sprintf("payment_stage:%s", serviceRequestID)
}

// Store is a synchronous key-value store scoped to a draft session.
//
// Get reports false for a missing key and for one whose stored bytes no
// longer decode into dest; a corrupt entry is indistinguishable from an
// absent one and never surfaces an error. Put overwrites silently. Remove
// is idempotent.
type Store interface {
	Put(ctx context.Context, sessionID, key string, value any) error
	Get(ctx context.Context, sessionID, key string, dest any) bool
	Remove(ctx context.Context, sessionID, key string) error
}
