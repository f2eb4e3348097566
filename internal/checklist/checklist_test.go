package checklist

import (
	"testing"

	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/stretchr/testify/suite"
)

type ChecklistSuite struct {
	suite.Suite
}

func TestChecklistSuite(t *testing.T) {
	suite.Run(t, new(ChecklistSuite))
}

func (s *ChecklistSuite) TestRequiredDocuments() {
	s.Run("known sub-services have their own lists", func() {
		s.Equal(
			[]string{"Pan Card", "Aadhar Card", "Existing Khata", "Property Documents", "NOC from Co-owners"},
			RequiredDocuments("Khata Bifurcation"),
		)
		s.Equal(
			[]string{"Pan Card", "Aadhar Card", "All Khata Certificates", "Property Documents", "Amalgamation Request Letter"},
			RequiredDocuments("Khata Amalgamation"),
		)
	})

	s.Run("unknown sub-service falls back to the default list", func() {
		s.Equal(
			[]string{"Pan Card", "Aadhar Card", "Birth Certificate", "Sale Deed", "Land Deed"},
			RequiredDocuments("Khata Conversion / Update"),
		)
	})

	s.Run("returned slices are copies", func() {
		first := RequiredDocuments("Khata Bifurcation")
		first[0] = "mutated"
		s.Equal("Pan Card", RequiredDocuments("Khata Bifurcation")[0])
	})
}

func (s *ChecklistSuite) TestCommonDocuments() {
	common := CommonDocuments()
	s.Len(common, 6)
	s.Contains(common, "Identity Proof (Front)")
	s.Contains(common, "Date of Birth Proof (Back)")
}

func (s *ChecklistSuite) TestStatus() {
	docs := []*types.Document{
		{ID: "d1", DocName: "Pan Card", Status: types.DocStatusUploaded, FileRef: utils.StringPtr("https://x/pan.pdf")},
		{ID: "d2", DocName: "Aadhar Card", Status: types.DocStatusNotAvailable, NotAvailable: true},
		{ID: "d3", DocName: "Sale Deed", Status: types.DocStatusPending},
	}

	s.Run("uploaded requires a file reference", func() {
		status := Status("Pan Card", docs)
		s.True(status.Uploaded)
		s.Equal("d1", status.DocumentID)

		// a row claiming uploaded without a file does not count
		noFile := []*types.Document{{ID: "d4", DocName: "Pan Card", Status: types.DocStatusUploaded}}
		s.False(Status("Pan Card", noFile).Uploaded)
	})

	s.Run("not available is reported", func() {
		status := Status("Aadhar Card", docs)
		s.False(status.Uploaded)
		s.True(status.NotAvailable)
	})

	s.Run("pending and absent look the same", func() {
		s.Equal(Status("Sale Deed", docs).Uploaded, Status("Never Heard Of", docs).Uploaded)
		s.Empty(Status("Never Heard Of", docs).DocumentID)
	})
}

func (s *ChecklistSuite) TestMissingAndComplete() {
	required := RequiredDocuments("New E-Katha Registration")

	docs := []*types.Document{
		{DocName: "Pan Card", Status: types.DocStatusUploaded, FileRef: utils.StringPtr("https://x/pan.pdf")},
		{DocName: "Aadhar Card", Status: types.DocStatusNotAvailable, NotAvailable: true},
	}

	s.Run("missing preserves required order", func() {
		s.Equal([]string{"Birth Certificate", "Sale Deed", "Land Deed"}, Missing(required, docs))
		s.False(IsComplete(required, docs))
	})

	s.Run("complete when each slot is uploaded or flagged", func() {
		all := append(docs,
			&types.Document{DocName: "Birth Certificate", Status: types.DocStatusUploaded, FileRef: utils.StringPtr("https://x/bc.pdf")},
			&types.Document{DocName: "Sale Deed", Status: types.DocStatusNotAvailable, NotAvailable: true},
			&types.Document{DocName: "Land Deed", Status: types.DocStatusUploaded, FileRef: utils.StringPtr("https://x/ld.pdf")},
		)
		s.True(IsComplete(required, all))
		s.Empty(Missing(required, all))
	})

	s.Run("irrelevant extra documents never change the result", func() {
		withExtra := append(docs, &types.Document{
			DocName: "Random Extra", Status: types.DocStatusUploaded, FileRef: utils.StringPtr("https://x/e.pdf"),
		})
		s.Equal(Missing(required, docs), Missing(required, withExtra))
	})
}

func (s *ChecklistSuite) TestTileTransitions() {
	s.Run("upload lifecycle", func() {
		tile := NewTile("Pan Card")
		s.Require().NoError(tile.BeginUpload())
		s.Equal(TileUploading, tile.State)

		s.Require().NoError(tile.FinishUpload(nil))
		s.Equal(TileUploaded, tile.State)

		// replacement upload is allowed from uploaded
		s.Require().NoError(tile.BeginUpload())
		s.Equal(TileUploading, tile.State)
	})

	s.Run("failed upload returns to empty", func() {
		tile := NewTile("Pan Card")
		s.Require().NoError(tile.BeginUpload())
		s.Error(tile.FinishUpload(errTest))
		s.Equal(TileEmpty, tile.State)
	})

	s.Run("not available only from empty", func() {
		tile := NewTile("Pan Card")
		s.Require().NoError(tile.MarkNotAvailable())
		s.Equal(TileNotAvailable, tile.State)

		s.Error(tile.BeginUpload())

		s.Require().NoError(tile.ClearNotAvailable())
		s.Equal(TileEmpty, tile.State)

		s.Require().NoError(tile.BeginUpload())
		s.Require().NoError(tile.FinishUpload(nil))
		s.Error(tile.MarkNotAvailable())
	})

	s.Run("remove requires an upload", func() {
		tile := NewTile("Pan Card")
		s.Error(tile.Remove())

		s.Require().NoError(tile.BeginUpload())
		s.Require().NoError(tile.FinishUpload(nil))
		s.Require().NoError(tile.Remove())
		s.Equal(TileEmpty, tile.State)
	})

	s.Run("from stored status", func() {
		tile := NewTile("Pan Card")
		tile.FromStatus(DocStatus{Uploaded: true})
		s.Equal(TileUploaded, tile.State)

		tile.FromStatus(DocStatus{NotAvailable: true})
		s.Equal(TileNotAvailable, tile.State)

		tile.FromStatus(DocStatus{})
		s.Equal(TileEmpty, tile.State)
	})
}

var errTest = errTestType{}

type errTestType struct{}

func (errTestType) Error() string { return "boom" }
