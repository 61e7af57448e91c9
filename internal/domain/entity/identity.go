package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity carries the shared identity and timestamp fields embedded by value
// in every aggregate. UpdatedAtUTC is zero until the first mutation.
type Identity struct {
	ID           string
	CreatedAtUTC time.Time
	UpdatedAtUTC time.Time
}

func newIdentity() Identity {
	return Identity{
		ID:           uuid.NewString(),
		CreatedAtUTC: time.Now().UTC(),
	}
}

func (i *Identity) touch() {
	i.UpdatedAtUTC = time.Now().UTC()
}
