package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeStatus is the disposition of a change request. Pending is the only
// non-terminal state.
type ChangeStatus string

const (
	ChangeStatusPending  ChangeStatus = "pending"
	ChangeStatusApproved ChangeStatus = "approved"
	ChangeStatusRejected ChangeStatus = "rejected"
)

// ChangeRequest is one proposed edit to a person's data, awaiting admin
// disposition. At most one pending request exists per unique code; repeat
// submissions coalesce into it (last write wins on content).
type ChangeRequest struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	PersonID   *uuid.UUID   `db:"person_id" json:"personId,omitempty"`
	UniqueCode string       `db:"unique_code" json:"uniqueCode"`
	OldData    JSONMap      `db:"old_data" json:"oldData,omitempty"`
	NewData    JSONMap      `db:"new_data" json:"newData"`
	Status     ChangeStatus `db:"status" json:"status"`
	IsNewEntry bool         `db:"is_new_entry" json:"isNewEntry"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updatedAt"`

	// Joined person summary for admin listings, not a stored column.
	Person *PersonSummary `db:"-" json:"person,omitempty"`
}

// PersonSummary is the slim join used in change listings.
type PersonSummary struct {
	ID         uuid.UUID `json:"id"`
	UniqueCode string    `json:"uniqueCode"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
}

// IsManualNeighborhood reports whether the submitter flagged the
// neighborhood as hand-entered, which makes it a candidate for cache
// extension on approval.
func (c *ChangeRequest) IsManualNeighborhood() bool {
	return c.NewData.GetBool("isManualNeighborhood")
}

// FlattenAddress folds a nested "address" sub-object into the top-level
// field set. Public forms send either shape; storage only knows the flat
// one.
func FlattenAddress(data JSONMap) JSONMap {
	nested, ok := data["address"].(map[string]interface{})
	if !ok {
		return data
	}

	flat := make(JSONMap, len(data)+len(nested))
	for k, v := range data {
		if k == "address" {
			continue
		}
		flat[k] = v
	}
	for k, v := range nested {
		flat[k] = v
	}
	return flat
}
