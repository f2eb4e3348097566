package types

import "time"

type ActivityStatus string

const (
	ActivityStatusCompleted ActivityStatus = "Completed"
	ActivityStatusOngoing   ActivityStatus = "Ongoing"
	ActivityStatusPending   ActivityStatus = "Pending"
)

const RelatedTypeServiceRequest = "service_request"

// Activity is a denormalized dashboard record, created or refreshed whenever
// a service request is saved or submitted.
type Activity struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"userId"`
	Title       string         `db:"title" json:"title"`
	Status      ActivityStatus `db:"status" json:"status"`
	Date        time.Time      `db:"date" json:"date"`
	RelatedType *string        `db:"related_type" json:"relatedType"`
	RelatedID   *string        `db:"related_id" json:"relatedId"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

type Transaction struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Item         string    `db:"item" json:"item"`
	Amount       *int64    `db:"amount" json:"amount"`
	ProjectName  *string   `db:"project_name" json:"projectName"`
	PropertyName *string   `db:"property_name" json:"propertyName"`
	Status       *string   `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
