package types

import "time"

type RegistrationType string

const (
	RegistrationTypeIndividual     RegistrationType = "individual"
	RegistrationTypeOrganization   RegistrationType = "organization"
	RegistrationTypeLandAggregator RegistrationType = "land_aggregator"
)

type Profile struct {
	ID               string    `db:"id" json:"id"`
	Name             *string   `db:"name" json:"name"`
	Phone            *string   `db:"phone" json:"phone"`
	ProfilePhotoURL  *string   `db:"profile_photo_url" json:"profilePhotoUrl"`
	RegistrationType *string   `db:"registration_type" json:"registrationType"`
	Role             string    `db:"role" json:"role"`
	UserType         string    `db:"user_type" json:"userType"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}
