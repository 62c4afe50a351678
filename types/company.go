package types

import "time"

// Company is an employer registered by a recruiter.
type Company struct {
	ID          ID        `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	Logo        string    `json:"logo"`
	UserID      ID        `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the company was registered by userID.
func (c Company) OwnedBy(userID ID) bool {
	return !userID.IsZero() && c.UserID == userID
}
