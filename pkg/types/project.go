package types

import "time"

type Project struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	PRNumber    *string   `db:"pr_number" json:"prNumber"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ProjectDraft is the client-held project pending remote creation. The ID is
// assigned locally and replaced by the server record's ID at reconciliation.
type ProjectDraft struct {
	SchemaVersion int    `json:"schemaVersion"`
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}
