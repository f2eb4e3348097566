package gateway

import (
	"strings"

	"edigivault/pkg/types"
)

// FormatAddress flattens the structured address into the single line shown
// on review screens. Field order is fixed; blank fields are dropped so no
// double separators appear.
func FormatAddress(f types.AddressFields) string {
	parts := []string{
		f.DoorNo,
		f.BuildingName,
		f.CrossRoad,
		f.MainRoad,
		f.Landmark,
		f.AreaName,
		f.Taluk,
		f.District,
		f.State,
		f.Pincode,
	}

	var filled []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			filled = append(filled, trimmed)
		}
	}

	return strings.Join(filled, ", ")
}
