package entity

import "time"

// FieldAgent onboards clients in the field and is tracked for funnel and
// engagement reporting. Agents never touch invoice or payment state.
type FieldAgent struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Region    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
