package workflow

import (
	"context"
	"testing"

	"edigivault/internal/draft"
	"edigivault/pkg/types"

	"github.com/stretchr/testify/suite"
)

type WorkflowSuite struct {
	suite.Suite
	store *draft.Memory
	ctx   context.Context
}

func (s *WorkflowSuite) SetupTest() {
	s.store = draft.NewMemory()
	s.ctx = context.Background()
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) TestGuard() {
	s.Run("nil context only admits the entry steps", func() {
		for _, step := range []Step{StepRegistrationType, StepCreateProject} {
			redirect, ok := Guard(step, nil)
			s.True(ok)
			s.Equal(step, redirect)
		}

		redirect, ok := Guard(StepRegister, nil)
		s.False(ok)
		s.Equal(StepRegistrationType, redirect)
	})

	s.Run("property step requires a project", func() {
		wctx := types.NewWorkflowContext()
		redirect, ok := Guard(StepCreateProperty, wctx)
		s.False(ok)
		s.Equal(StepCreateProject, redirect)

		wctx.Project = &types.ProjectDraft{Title: "T"}
		_, ok = Guard(StepCreateProperty, wctx)
		s.True(ok)
	})

	s.Run("service selection requires project and property", func() {
		wctx := types.NewWorkflowContext()
		wctx.Project = &types.ProjectDraft{Title: "T"}

		redirect, ok := Guard(StepServiceSelection, wctx)
		s.False(ok)
		s.Equal(StepCreateProperty, redirect)

		wctx.Property = &types.PropertyDraft{PropertyName: "P"}
		_, ok = Guard(StepServiceSelection, wctx)
		s.True(ok)
	})

	s.Run("reconciled remote IDs satisfy draft requirements", func() {
		wctx := types.NewWorkflowContext()
		wctx.RemoteProjectID = "proj-1"
		wctx.RemotePropertyID = "prop-1"

		_, ok := Guard(StepServiceSelection, wctx)
		s.True(ok)
	})

	s.Run("document steps require a service request", func() {
		wctx := types.NewWorkflowContext()
		wctx.MainService = "e-katha"

		for _, step := range []Step{StepCommonDocuments, StepRequiredDocuments, StepReview, StepCharges} {
			redirect, ok := Guard(step, wctx)
			s.False(ok)
			s.Equal(StepSubService, redirect)
		}

		wctx.ServiceRequestID = "sr-1"
		for _, step := range []Step{StepCommonDocuments, StepRequiredDocuments, StepReview, StepCharges} {
			_, ok := Guard(step, wctx)
			s.True(ok)
		}
	})

	s.Run("unknown step redirects to the start", func() {
		redirect, ok := Guard(Step("bogus"), types.NewWorkflowContext())
		s.False(ok)
		s.Equal(StepRegistrationType, redirect)
	})
}

func (s *WorkflowSuite) TestLoadSaveRoundTrip() {
	wctx := types.NewWorkflowContext()
	wctx.RegistrationType = types.RegistrationTypeIndividual
	wctx.Project = &types.ProjectDraft{Title: "Hebbal"}
	wctx.MainService = "e-katha"

	s.Require().NoError(Save(s.ctx, s.store, "sess", wctx))

	loaded := Load(s.ctx, s.store, "sess")
	s.Equal(types.RegistrationTypeIndividual, loaded.RegistrationType)
	s.Equal("Hebbal", loaded.Project.Title)
	s.Equal("e-katha", loaded.MainService)
	s.NotNil(loaded.CommonDocs)
}

func (s *WorkflowSuite) TestLoadFallsBackToFresh() {
	s.Run("missing record", func() {
		loaded := Load(s.ctx, s.store, "empty-session")
		s.Equal(types.WorkflowContextSchemaVersion, loaded.SchemaVersion)
		s.Empty(loaded.MainService)
	})

	s.Run("corrupt record", func() {
		s.store.Corrupt("sess", draft.KeyWorkflowContext, []byte("{broken"))

		loaded := Load(s.ctx, s.store, "sess")
		s.Empty(loaded.MainService)
	})

	s.Run("stale schema version", func() {
		s.store.Corrupt("sess", draft.KeyWorkflowContext, []byte(`{"schemaVersion":0,"mainService":"e-katha"}`))

		loaded := Load(s.ctx, s.store, "sess")
		s.Empty(loaded.MainService)
	})
}

func (s *WorkflowSuite) TestServices() {
	s.Run("catalog lookup", func() {
		service, ok := MainServiceByID("e-katha")
		s.True(ok)
		s.Equal("E-katha", service.Label)

		_, ok = MainServiceByID("nope")
		s.False(ok)
	})

	s.Run("only e-katha has sub-services", func() {
		s.NotEmpty(SubServices("e-katha"))
		s.Nil(SubServices("survey"))
	})

	s.Run("sub-service validation", func() {
		s.True(ValidSubService("e-katha", "New E-Katha Registration"))
		s.False(ValidSubService("e-katha", "Made Up"))
		s.False(ValidSubService("survey", "New E-Katha Registration"))
	})
}
