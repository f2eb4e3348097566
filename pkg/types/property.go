package types

import "time"

type AreaType string

const (
	AreaTypeUrban AreaType = "urban"
	AreaTypeRural AreaType = "rural"
)

// AddressFields is the structured postal address captured on the property
// form, persisted as jsonb alongside the flattened short address.
type AddressFields struct {
	DoorNo           string   `json:"door_no"`
	BuildingName     string   `json:"building_name"`
	CrossRoad        string   `json:"cross_road"`
	MainRoad         string   `json:"main_road"`
	Landmark         string   `json:"landmark"`
	AreaName         string   `json:"area_name"`
	State            string   `json:"state"`
	Zone             string   `json:"zone"`
	District         string   `json:"district"`
	Taluk            string   `json:"taluk"`
	AreaType         AreaType `json:"area_type"`
	MunicipalType    string   `json:"municipal_type"`
	WardOrPanchayath string   `json:"ward_or_panchayath"`
	PostOffice       string   `json:"post_office"`
	Pincode          string   `json:"pincode"`
}

type Property struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"userId"`
	ProjectID     string         `db:"project_id" json:"projectId"`
	PropertyType  string         `db:"property_type" json:"propertyType"`
	PropertyName  string         `db:"property_name" json:"propertyName"`
	AddressShort  *string        `db:"address_short" json:"addressShort"`
	SizeUnit      *string        `db:"size_unit" json:"sizeUnit"`
	SizeValue     *float64       `db:"size_value" json:"sizeValue"`
	AddressFields *AddressFields `db:"address_fields" json:"addressFields"`
	Latitude      *float64       `db:"latitude" json:"latitude"`
	Longitude     *float64       `db:"longitude" json:"longitude"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

// PropertyDraft carries the property form between screens before the remote
// record exists.
type PropertyDraft struct {
	SchemaVersion int           `json:"schemaVersion"`
	ID            string        `json:"id"`
	ProjectID     string        `json:"projectId"`
	PropertyType  string        `json:"propertyType"`
	PropertyName  string        `json:"propertyName"`
	AddressShort  string        `json:"addressShort"`
	SizeUnit      string        `json:"sizeUnit"`
	SizeValue     float64       `json:"sizeValue"`
	Address       AddressFields `json:"address"`
	Latitude      *float64      `json:"latitude"`
	Longitude     *float64      `json:"longitude"`
}
