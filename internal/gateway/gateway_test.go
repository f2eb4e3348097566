package gateway

import (
	"context"
	"io"
	"strings"
	"testing"

	"edigivault/internal/gateway/gatewaytest"
	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type GatewaySuite struct {
	suite.Suite
	store   *gatewaytest.Store
	storage *gatewaytest.Storage
	gateway *Gateway
	ctx     context.Context
}

func (s *GatewaySuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.store = gatewaytest.NewStore()
	s.storage = gatewaytest.NewStorage()
	s.gateway = New(logger, s.store, s.store, s.store, s.store, s.store, s.store, s.store, s.storage)
	s.ctx = context.Background()
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

const testUser = "user-1"

func (s *GatewaySuite) seedProjectAndProperty() (*types.Project, *types.Property) {
	project, err := s.gateway.CreateProject(s.ctx, testUser, &types.ProjectDraft{Title: "Hebbal Plot"})
	s.Require().NoError(err)

	property, err := s.gateway.CreateProperty(s.ctx, testUser, &types.PropertyDraft{
		ProjectID:    project.ID,
		PropertyName: "Plot 12/4",
		PropertyType: "residential",
		Address: types.AddressFields{
			DoorNo:   "12/4",
			AreaName: "Hebbal",
			District: "Bangalore Urban",
			State:    "Karnataka",
			Pincode:  "560024",
		},
	})
	s.Require().NoError(err)

	return project, property
}

func (s *GatewaySuite) seedServiceRequest() *types.ServiceRequest {
	project, property := s.seedProjectAndProperty()
	request, created, err := s.gateway.UpsertServiceRequest(s.ctx, testUser, project.ID, property.ID, "E-katha", "New E-Katha Registration")
	s.Require().NoError(err)
	s.Require().True(created)
	return request
}

func (s *GatewaySuite) TestCreateProject() {
	s.Run("rejects blank title", func() {
		_, err := s.gateway.CreateProject(s.ctx, testUser, &types.ProjectDraft{Title: "   "})

		var validationErr *types.ValidationError
		s.Require().ErrorAs(err, &validationErr)
		s.Equal("required", validationErr.Fields["title"])
	})

	s.Run("assigns a project reference", func() {
		project, err := s.gateway.CreateProject(s.ctx, testUser, &types.ProjectDraft{Title: "Hebbal Plot"})
		s.Require().NoError(err)
		s.NotEmpty(project.ID)
		s.True(strings.HasPrefix(utils.Deref(project.PRNumber), "PR-"))
	})
}

func (s *GatewaySuite) TestCreateProperty() {
	s.Run("rejects a foreign project", func() {
		other, err := s.gateway.CreateProject(s.ctx, "someone-else", &types.ProjectDraft{Title: "Not Yours"})
		s.Require().NoError(err)

		_, err = s.gateway.CreateProperty(s.ctx, testUser, &types.PropertyDraft{
			ProjectID:    other.ID,
			PropertyName: "Plot",
		})

		var notFoundErr *types.NotFoundError
		s.Require().ErrorAs(err, &notFoundErr)
	})

	s.Run("formats the short address in field order", func() {
		project, _ := s.gateway.CreateProject(s.ctx, testUser, &types.ProjectDraft{Title: "Addr Test"})

		property, err := s.gateway.CreateProperty(s.ctx, testUser, &types.PropertyDraft{
			ProjectID:    project.ID,
			PropertyName: "Plot",
			Address: types.AddressFields{
				DoorNo:   "7",
				Landmark: "Near Park",
				AreaName: "Hebbal",
				State:    "Karnataka",
				Pincode:  "560024",
			},
		})
		s.Require().NoError(err)
		s.Equal("7, Near Park, Hebbal, Karnataka, 560024", utils.Deref(property.AddressShort))
	})
}

func (s *GatewaySuite) TestFormatAddressSkipsBlanks() {
	out := FormatAddress(types.AddressFields{MainRoad: "  ORR  ", District: "Bangalore Urban"})
	s.Equal("ORR, Bangalore Urban", out)

	s.Equal("", FormatAddress(types.AddressFields{}))
}

func (s *GatewaySuite) TestUpsertServiceRequest() {
	project, property := s.seedProjectAndProperty()

	first, created, err := s.gateway.UpsertServiceRequest(s.ctx, testUser, project.ID, property.ID, "E-katha", "New E-Katha Registration")
	s.Require().NoError(err)
	s.True(created)
	s.Equal(types.ServiceRequestStatusDraft, first.Status)

	s.Run("repeat selection reuses the record", func() {
		second, created, err := s.gateway.UpsertServiceRequest(s.ctx, testUser, project.ID, property.ID, "E-katha", "Khata Bifurcation")
		s.Require().NoError(err)
		s.False(created)
		s.Equal(first.ID, second.ID)
		s.Equal("Khata Bifurcation", utils.Deref(second.SubService))
	})

	s.Run("different main service creates a new record", func() {
		third, created, err := s.gateway.UpsertServiceRequest(s.ctx, testUser, project.ID, property.ID, "Survey Documents", "")
		s.Require().NoError(err)
		s.True(created)
		s.NotEqual(first.ID, third.ID)
	})
}

func (s *GatewaySuite) TestUploadDocument() {
	request := s.seedServiceRequest()

	s.Run("stores the file and records the slot", func() {
		doc, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Pan Card", "pan.pdf", "application/pdf", []byte("pdf"))
		s.Require().NoError(err)
		s.Equal(types.DocStatusUploaded, doc.Status)
		s.False(doc.NotAvailable)
		s.Contains(utils.Deref(doc.FileRef), "Pan_Card.pdf")
		s.Contains(s.storage.Objects, testUser+"/"+request.ID+"/Pan_Card.pdf")
	})

	s.Run("re-upload replaces the slot in place", func() {
		first, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Aadhar Card", "a1.jpg", "image/jpeg", []byte("v1"))
		s.Require().NoError(err)

		second, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Aadhar Card", "a2.jpg", "image/jpeg", []byte("v2"))
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)

		docs, err := s.gateway.Documents(s.ctx, testUser, request.ID)
		s.Require().NoError(err)

		count := 0
		for _, doc := range docs {
			if doc.DocName == "Aadhar Card" {
				count++
			}
		}
		s.Equal(1, count)
	})

	s.Run("storage failure writes no row", func() {
		s.storage.Fail = true
		defer func() { s.storage.Fail = false }()

		_, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Sale Deed", "deed.pdf", "application/pdf", []byte("pdf"))

		var networkErr *types.NetworkError
		s.Require().ErrorAs(err, &networkErr)

		_, err = s.store.DocumentByName(s.ctx, testUser, request.ID, "Sale Deed")
		var notFoundErr *types.NotFoundError
		s.ErrorAs(err, &notFoundErr)
	})
}

func (s *GatewaySuite) TestSetNotAvailable() {
	request := s.seedServiceRequest()

	s.Run("flagging an uploaded slot discards the file reference", func() {
		_, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Pan Card", "pan.pdf", "application/pdf", []byte("pdf"))
		s.Require().NoError(err)

		doc, err := s.gateway.SetNotAvailable(s.ctx, testUser, request.ID, "Pan Card", types.DocGroupRequired, true)
		s.Require().NoError(err)
		s.True(doc.NotAvailable)
		s.Equal(types.DocStatusNotAvailable, doc.Status)
		s.Nil(doc.FileRef)
	})

	s.Run("unflagging a missing slot creates a pending placeholder", func() {
		doc, err := s.gateway.SetNotAvailable(s.ctx, testUser, request.ID, "Birth Certificate", "", false)
		s.Require().NoError(err)
		s.False(doc.NotAvailable)
		s.Equal(types.DocStatusPending, doc.Status)
		s.Equal(types.DocGroupCommon, doc.DocGroup)
	})

	s.Run("uploading over a flagged slot clears the flag", func() {
		_, err := s.gateway.SetNotAvailable(s.ctx, testUser, request.ID, "Sale Deed", types.DocGroupRequired, true)
		s.Require().NoError(err)

		doc, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Sale Deed", "deed.pdf", "application/pdf", []byte("pdf"))
		s.Require().NoError(err)
		s.False(doc.NotAvailable)
		s.Equal(types.DocStatusUploaded, doc.Status)
		s.NotNil(doc.FileRef)
	})

	s.Run("refuses a slot on a nonexistent service request", func() {
		_, err := s.gateway.SetNotAvailable(s.ctx, testUser, "missing-request", "Pan Card", types.DocGroupRequired, true)

		var notFoundErr *types.NotFoundError
		s.Require().ErrorAs(err, &notFoundErr)

		docs, err := s.store.DocumentsByServiceRequest(s.ctx, testUser, "missing-request")
		s.Require().NoError(err)
		s.Empty(docs)
	})

	s.Run("unflagging after a flag leaves the slot pending", func() {
		_, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Land Deed", "deed.pdf", "application/pdf", []byte("pdf"))
		s.Require().NoError(err)

		flagged, err := s.gateway.SetNotAvailable(s.ctx, testUser, request.ID, "Land Deed", types.DocGroupRequired, true)
		s.Require().NoError(err)
		s.Nil(flagged.FileRef)

		restored, err := s.gateway.SetNotAvailable(s.ctx, testUser, request.ID, "Land Deed", types.DocGroupRequired, false)
		s.Require().NoError(err)
		s.Equal(types.DocStatusPending, restored.Status)
	})
}

func (s *GatewaySuite) TestSubmitServiceRequest() {
	s.Run("blocks submission while documents are missing", func() {
		request := s.seedServiceRequest()

		_, err := s.gateway.SubmitServiceRequest(s.ctx, testUser, request.ID, false)

		var validationErr *types.ValidationError
		s.Require().ErrorAs(err, &validationErr)
		s.Contains(validationErr.MissingDocuments, "Pan Card")
		s.Contains(validationErr.MissingDocuments, "Land Deed")
		s.Len(validationErr.MissingDocuments, 5)

		// the refused submission must not touch the stored status
		unchanged, err := s.store.ServiceRequestByID(s.ctx, testUser, request.ID)
		s.Require().NoError(err)
		s.Equal(types.ServiceRequestStatusDraft, unchanged.Status)
	})

	s.Run("submits once every slot is resolved", func() {
		request := s.seedServiceRequest()

		for _, name := range []string{"Pan Card", "Aadhar Card", "Sale Deed"} {
			_, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, name, "f.pdf", "application/pdf", []byte("pdf"))
			s.Require().NoError(err)
		}
		for _, name := range []string{"Birth Certificate", "Land Deed"} {
			_, err := s.gateway.SetNotAvailable(s.ctx, testUser, request.ID, name, types.DocGroupRequired, true)
			s.Require().NoError(err)
		}

		submitted, err := s.gateway.SubmitServiceRequest(s.ctx, testUser, request.ID, false)
		s.Require().NoError(err)
		s.Equal(types.ServiceRequestStatusSubmitted, submitted.Status)

		activity, err := s.store.ActivityByRelated(s.ctx, testUser, types.RelatedTypeServiceRequest, request.ID)
		s.Require().NoError(err)
		s.Equal("E-katha - Plot 12/4", activity.Title)
		s.Equal(types.ActivityStatusPending, activity.Status)
	})

	s.Run("skip validation bypasses the checklist gate", func() {
		request := s.seedServiceRequest()

		submitted, err := s.gateway.SubmitServiceRequest(s.ctx, testUser, request.ID, true)
		s.Require().NoError(err)
		s.Equal(types.ServiceRequestStatusSubmitted, submitted.Status)
	})
}

func (s *GatewaySuite) TestSaveDraftRefreshesOneActivity() {
	request := s.seedServiceRequest()

	_, err := s.gateway.SaveDraft(s.ctx, testUser, request.ID)
	s.Require().NoError(err)

	_, err = s.gateway.SaveDraft(s.ctx, testUser, request.ID)
	s.Require().NoError(err)

	activities, err := s.gateway.Activities(s.ctx, testUser)
	s.Require().NoError(err)
	s.Len(activities, 1)
}

func (s *GatewaySuite) TestDeleteDocument() {
	request := s.seedServiceRequest()

	doc, err := s.gateway.UploadDocument(s.ctx, testUser, request.ID, types.DocGroupRequired, "Pan Card", "pan.pdf", "application/pdf", []byte("pdf"))
	s.Require().NoError(err)

	s.Require().NoError(s.gateway.DeleteDocument(s.ctx, testUser, doc.ID))

	_, err = s.store.DocumentByName(s.ctx, testUser, request.ID, "Pan Card")
	var notFoundErr *types.NotFoundError
	s.ErrorAs(err, &notFoundErr)
}

func (s *GatewaySuite) TestRecordPayment() {
	request := s.seedServiceRequest()

	charge, ok := ChargeByID("basic-legal")
	s.Require().True(ok)

	transaction, err := s.gateway.RecordPayment(s.ctx, testUser, request.ID, charge)
	s.Require().NoError(err)
	s.Equal(charge.Label, transaction.Item)
	s.Equal("paid", utils.Deref(transaction.Status))
	s.Equal("Hebbal Plot", utils.Deref(transaction.ProjectName))
	s.Equal("Plot 12/4", utils.Deref(transaction.PropertyName))
}

func (s *GatewaySuite) TestEnsureProfile() {
	profile, err := s.gateway.EnsureProfile(s.ctx, testUser, "+919900112233", "", "")
	s.Require().NoError(err)
	s.Equal("user", profile.Role)
	s.Equal("+919900112233", utils.Deref(profile.Phone))

	updated, err := s.gateway.EnsureProfile(s.ctx, testUser, "", "Asha", types.RegistrationTypeIndividual)
	s.Require().NoError(err)
	s.Equal(profile.ID, updated.ID)
	s.Equal("Asha", utils.Deref(updated.Name))
	s.Equal(string(types.RegistrationTypeIndividual), utils.Deref(updated.RegistrationType))
}
