package dto

// DefinitionItem is one row of the admin address-definition listing,
// enriched with ancestor names so neighborhoods show their district and
// province.
type DefinitionItem struct {
	PlaceID      string `json:"placeId"`
	Name         string `json:"name"`
	ParentID     string `json:"parentId,omitempty"`
	IsManual     bool   `json:"isManual"`
	ProvinceName string `json:"provinceName,omitempty"`
	DistrictName string `json:"districtName,omitempty"`
}

type DefinitionListRequest struct {
	Type     string `query:"type" validate:"required"`
	ParentID string `query:"parentId"`
	Search   string `query:"search"`
}

type AddDefinitionRequest struct {
	Type     string `json:"type" validate:"required"`
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parentId"`
}
