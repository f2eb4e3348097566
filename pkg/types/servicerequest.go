package types

import "time"

type ServiceRequestStatus string

const (
	ServiceRequestStatusDraft      ServiceRequestStatus = "draft"
	ServiceRequestStatusSubmitted  ServiceRequestStatus = "submitted"
	ServiceRequestStatusInProgress ServiceRequestStatus = "in_progress"
)

// ServiceRequest ties a government service to a (project, property) pair.
// At most one row exists per (user, project, property, main service); repeat
// selections update the existing row.
type ServiceRequest struct {
	ID          string               `db:"id" json:"id"`
	UserID      string               `db:"user_id" json:"userId"`
	ProjectID   string               `db:"project_id" json:"projectId"`
	PropertyID  string               `db:"property_id" json:"propertyId"`
	MainService string               `db:"main_service" json:"mainService"`
	SubService  *string              `db:"sub_service" json:"subService"`
	Status      ServiceRequestStatus `db:"status" json:"status"`
	CreatedAt   time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updatedAt"`
}
