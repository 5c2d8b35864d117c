package domain

import (
	"time"

	"github.com/google/uuid"
)

// Person is the authoritative record of a verified individual, keyed by the
// short public reference code. Address fields stay freeform strings on
// purpose: submissions arrive from end users with inconsistent structure.
type Person struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UniqueCode  string    `db:"unique_code" json:"uniqueCode"`
	FirstName   string    `db:"first_name" json:"firstName"`
	LastName    string    `db:"last_name" json:"lastName"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Email       string    `db:"email" json:"email,omitempty"`
	Province    string    `db:"province" json:"province,omitempty"`
	District    string    `db:"district" json:"district,omitempty"`
	Neighborhood string   `db:"neighborhood" json:"neighborhood,omitempty"`
	Street      string    `db:"street" json:"street,omitempty"`
	BuildingNo  string    `db:"building_no" json:"buildingNo,omitempty"`
	ApartmentNo string    `db:"apartment_no" json:"apartmentNo,omitempty"`
	PostalCode  string    `db:"postal_code" json:"postalCode,omitempty"`
	FullAddress string    `db:"full_address" json:"fullAddress,omitempty"`

	// Append-only engagement telemetry, never pruned.
	LinkVisits      TimeLog `db:"link_visits" json:"linkVisits,omitempty"`
	FormSubmissions TimeLog `db:"form_submissions" json:"formSubmissions,omitempty"`
	ButtonClicks    TimeLog `db:"button_clicks" json:"buttonClicks,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TelemetryKind selects which append-only log an event lands in.
type TelemetryKind string

const (
	TelemetryLinkVisit      TelemetryKind = "link_visits"
	TelemetryFormSubmission TelemetryKind = "form_submissions"
	TelemetryButtonClick    TelemetryKind = "button_clicks"
)

// PersonFieldKeys are the submittable field names, in display order. They
// double as the JSON keys of snapshots and proposed data.
var PersonFieldKeys = []string{
	"firstName", "lastName", "phone", "email",
	"province", "district", "neighborhood", "street",
	"buildingNo", "apartmentNo", "postalCode", "fullAddress",
}

// Snapshot copies the submittable fields into a map, used as the prior
// state of a change request and as the public display payload.
func (p *Person) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"firstName":    p.FirstName,
		"lastName":     p.LastName,
		"phone":        p.Phone,
		"email":        p.Email,
		"province":     p.Province,
		"district":     p.District,
		"neighborhood": p.Neighborhood,
		"street":       p.Street,
		"buildingNo":   p.BuildingNo,
		"apartmentNo":  p.ApartmentNo,
		"postalCode":   p.PostalCode,
		"fullAddress":  p.FullAddress,
	}
}
