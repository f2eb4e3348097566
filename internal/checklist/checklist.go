// Package checklist computes the set of documents a service request needs
// and the completion state of each one.
package checklist

import (
	"edigivault/pkg/types"
)

// requiredDocuments maps an exact sub-service label to its document list.
// The labels and lists are fixed configuration agreed with the operations
// team; unrecognized sub-services fall back to the default list.
var requiredDocuments = map[string][]string{
	"New E-Katha Registration": {
		"Pan Card",
		"Aadhar Card",
		"Birth Certificate",
		"Sale Deed",
		"Land Deed",
	},
	"Khata Bifurcation": {
		"Pan Card",
		"Aadhar Card",
		"Existing Khata",
		"Property Documents",
		"NOC from Co-owners",
	},
	"Khata Amalgamation": {
		"Pan Card",
		"Aadhar Card",
		"All Khata Certificates",
		"Property Documents",
		"Amalgamation Request Letter",
	},
}

var defaultDocuments = []string{
	"Pan Card",
	"Aadhar Card",
	"Birth Certificate",
	"Sale Deed",
	"Land Deed",
}

// commonDocuments are collected once per service request regardless of the
// selected sub-service: both sides of the three identity proofs.
var commonDocuments = []string{
	"Identity Proof (Front)",
	"Identity Proof (Back)",
	"Address Proof (Front)",
	"Address Proof (Back)",
	"Date of Birth Proof (Front)",
	"Date of Birth Proof (Back)",
}

// RequiredDocuments returns the document names for a sub-service, in stable
// order. The returned slice is a copy; callers may mutate it.
func RequiredDocuments(subService string) []string {
	names, ok := requiredDocuments[subService]
	if !ok {
		names = defaultDocuments
	}

	out := make([]string, len(names))
	copy(out, names)
	return out
}

func CommonDocuments() []string {
	out := make([]string, len(commonDocuments))
	copy(out, commonDocuments)
	return out
}

// DocStatus is the derived completion state of one document name.
type DocStatus struct {
	Uploaded     bool   `json:"uploaded"`
	NotAvailable bool   `json:"notAvailable"`
	DocumentID   string `json:"documentId"`
}

// Status scans the loaded document rows for the given name. Rows for other
// names never influence the result.
func Status(name string, documents []*types.Document) DocStatus {
	for _, doc := range documents {
		if doc.DocName != name {
			continue
		}
		return DocStatus{
			Uploaded:     doc.Status == types.DocStatusUploaded && doc.FileRef != nil,
			NotAvailable: doc.NotAvailable,
			DocumentID:   doc.ID,
		}
	}
	return DocStatus{}
}

// IsComplete reports whether every required name is either uploaded or
// explicitly marked not-available. This predicate is the sole submission
// gate.
func IsComplete(required []string, documents []*types.Document) bool {
	return len(Missing(required, documents)) == 0
}

// Missing returns the required names that block submission, in the
// required list's order.
func Missing(required []string, documents []*types.Document) []string {
	var missing []string
	for _, name := range required {
		status := Status(name, documents)
		if !status.Uploaded && !status.NotAvailable {
			missing = append(missing, name)
		}
	}
	return missing
}
