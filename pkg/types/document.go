package types

import "time"

type DocumentGroup string

const (
	DocGroupCommon   DocumentGroup = "common"
	DocGroupRequired DocumentGroup = "required"
	DocGroupOther    DocumentGroup = "other"
)

type DocumentStatus string

const (
	DocStatusPending      DocumentStatus = "pending"
	DocStatusUploaded     DocumentStatus = "uploaded"
	DocStatusNotAvailable DocumentStatus = "not_available"
)

// Document is one named slot in a service request's checklist. Exactly one
// row exists per (service request, name); re-upload replaces FileRef in
// place. FileRef and NotAvailable are mutually exclusive.
type Document struct {
	ID               string         `db:"id" json:"id"`
	UserID           string         `db:"user_id" json:"userId"`
	ServiceRequestID string         `db:"service_request_id" json:"serviceRequestId"`
	DocGroup         DocumentGroup  `db:"doc_group" json:"docGroup"`
	DocName          string         `db:"doc_name" json:"docName"`
	FileRef          *string        `db:"file_ref" json:"fileRef"`
	NotAvailable     bool           `db:"not_available" json:"notAvailable"`
	Status           DocumentStatus `db:"status" json:"status"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
}
