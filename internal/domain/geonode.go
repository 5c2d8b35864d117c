package domain

import (
	"fmt"
	"strings"
	"time"
)

// NodeType is the level of an entry in the address hierarchy.
type NodeType string

const (
	NodeTypeProvince     NodeType = "province"
	NodeTypeDistrict     NodeType = "district"
	NodeTypeNeighborhood NodeType = "neighborhood"
	NodeTypeStreet       NodeType = "street"
)

// ValidNodeType reports whether t belongs to the closed level set.
func ValidNodeType(t NodeType) bool {
	switch t {
	case NodeTypeProvince, NodeTypeDistrict, NodeTypeNeighborhood, NodeTypeStreet:
		return true
	}
	return false
}

// GeoNode is one cached entry of the province/district/neighborhood
// hierarchy. PlaceID is the only identity; ParentID is a lookup key to the
// immediate ancestor's PlaceID, empty only for provinces.
type GeoNode struct {
	PlaceID          string    `db:"place_id" json:"placeId"`
	Type             NodeType  `db:"type" json:"type"`
	ParentID         string    `db:"parent_id" json:"parentId,omitempty"`
	Name             string    `db:"name" json:"name"`
	FormattedAddress string    `db:"formatted_address" json:"formattedAddress,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// IsManual reports whether the node was added by hand rather than fetched
// from the external directory.
func (n *GeoNode) IsManual() bool {
	return strings.Contains(n.PlaceID, "_custom_")
}

// SourcePlaceID derives the stable internal id for a node fetched from the
// external directory. External numeric ids never leave the resolver.
func SourcePlaceID(t NodeType, sourceID int64) string {
	return fmt.Sprintf("%s_%d", t, sourceID)
}

// CustomPlaceID derives the id for a manually added node. The timestamp
// marker doubles as the "manually added" flag in listings.
func CustomPlaceID(t NodeType, at time.Time) string {
	return fmt.Sprintf("%s_custom_%d", t, at.UnixMilli())
}

// SourceNumericID strips the level prefix back off an internal place id,
// returning the external directory id ("province_6" -> "6").
func SourceNumericID(placeID string, t NodeType) string {
	return strings.TrimPrefix(placeID, string(t)+"_")
}

// FallbackNeighborhoodName is persisted when the external directory cannot
// provide neighborhoods for a district, so the form always has an option.
const FallbackNeighborhoodName = "Diğer"

// FallbackNeighborhoodID is deterministic per district, which makes the
// fallback upsert idempotent under concurrent resolves.
func FallbackNeighborhoodID(districtID string) string {
	return fmt.Sprintf("neighborhood_%s_diger", districtID)
}

// AddressOption is the {id,name} pair served to address pickers.
type AddressOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
