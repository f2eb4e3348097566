// Package workflow models the registration flow as an ordered set of steps
// with explicit entry conditions. Handlers ask Guard whether a step may be
// entered instead of each screen re-deriving the rules.
package workflow

import (
	"context"

	"edigivault/internal/draft"
	"edigivault/pkg/types"
)

type Step string

const (
	StepRegistrationType  Step = "registration-type"
	StepRegister          Step = "register"
	StepCreateProject     Step = "create-project"
	StepCreateProperty    Step = "create-property"
	StepServiceSelection  Step = "service-selection"
	StepSubService        Step = "sub-service"
	StepCommonDocuments   Step = "common-documents"
	StepRequiredDocuments Step = "required-documents"
	StepReview            Step = "review"
	StepCharges           Step = "charges"
)

// Guard reports whether the workflow context satisfies a step's entry
// conditions. When it does not, the returned step is the earliest one the
// user must return to. Entering a step never mutates the context, so a
// refused entry has no side effects.
func Guard(step Step, wctx *types.WorkflowContext) (Step, bool) {
	if wctx == nil {
		wctx = types.NewWorkflowContext()
	}

	switch step {
	case StepRegistrationType:
		return step, true

	case StepRegister:
		if wctx.RegistrationType == "" {
			return StepRegistrationType, false
		}

	case StepCreateProject:
		// Reachable directly from the dashboard as well, no prerequisites.
		return step, true

	case StepCreateProperty:
		if wctx.Project == nil && wctx.RemoteProjectID == "" {
			return StepCreateProject, false
		}

	case StepServiceSelection:
		if wctx.Project == nil && wctx.RemoteProjectID == "" {
			return StepCreateProject, false
		}
		if wctx.Property == nil && wctx.RemotePropertyID == "" {
			return StepCreateProperty, false
		}

	case StepSubService:
		if wctx.MainService == "" {
			return StepServiceSelection, false
		}

	case StepCommonDocuments, StepRequiredDocuments, StepReview, StepCharges:
		if wctx.ServiceRequestID == "" {
			return StepSubService, false
		}

	default:
		return StepRegistrationType, false
	}

	return step, true
}

// Load reads the workflow context for a draft session. A missing, corrupt
// or schema-stale record yields a fresh context; the caller cannot tell the
// difference and does not need to.
func Load(ctx context.Context, store draft.Store, sessionID string) *types.WorkflowContext {
	wctx := new(types.WorkflowContext)
	if !store.Get(ctx, sessionID, draft.KeyWorkflowContext, wctx) {
		return types.NewWorkflowContext()
	}
	if wctx.SchemaVersion != types.WorkflowContextSchemaVersion {
		return types.NewWorkflowContext()
	}
	if wctx.CommonDocs == nil {
		wctx.CommonDocs = make(map[string]string)
	}
	return wctx
}

func Save(ctx context.Context, store draft.Store, sessionID string, wctx *types.WorkflowContext) error {
	wctx.SchemaVersion = types.WorkflowContextSchemaVersion
	return store.Put(ctx, sessionID, draft.KeyWorkflowContext, wctx)
}

// Clear discards the draft context, typically after a request is submitted.
func Clear(ctx context.Context, store draft.Store, sessionID string) error {
	return store.Remove(ctx, sessionID, draft.KeyWorkflowContext)
}
