// Package models defines the core data structures for users, personnel
// and equipment records.
package models

import "time"

// Role identifies the authorization tier of a user.
type Role string

const (
	// RoleAdmin grants read and write access to every resource.
	RoleAdmin Role = "admin"
	// RoleUser grants read-only access to record resources.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an application account with credentials.
type User struct {
	// ID is the system-assigned numeric identifier.
	ID int64 `json:"id"`
	// Username is the unique login name.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash []byte `json:"-"`
	// Role is the authorization tier of the account.
	Role Role `json:"role"`
	// CreatedAt records when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the authenticated principal decoded from a token.
type Identity struct {
	// ID is the numeric user identifier.
	ID int64 `json:"id"`
	// Username is the login name the token was issued for.
	Username string `json:"username"`
	// Role is the authorization tier encoded in the token.
	Role Role `json:"role"`
}

// ServingPersonnel represents an active service member keyed by service ID.
// Age at insert time must fall in [18, 60); the store enforces this.
type ServingPersonnel struct {
	ServiceID   string  `json:"service_id"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"date_of_birth"`
	Rank        string  `json:"rank"`
	Regiment    *string `json:"regiment,omitempty"`
	// Salary must be positive; enforced by the store.
	Salary        float64 `json:"salary"`
	Awards        *string `json:"awards,omitempty"`
	Skills        *string `json:"skills,omitempty"`
	Posting       string  `json:"posting"`
	BloodGroup    *string `json:"blood_group,omitempty"`
	MedicalStatus *string `json:"medical_status,omitempty"`
}

// Posting codes accepted for serving personnel.
const (
	PostingField    = "FIELD"
	PostingGarrison = "GARRISON"
	PostingHQ       = "HQ"
	PostingReserve  = "RESERVE"
)

// ValidPosting reports whether p is one of the accepted posting codes.
func ValidPosting(p string) bool {
	switch p {
	case PostingField, PostingGarrison, PostingHQ, PostingReserve:
		return true
	}
	return false
}

// RetiredPersonnel represents a retired service member. The service ID
// namespace is independent from ServingPersonnel.
type RetiredPersonnel struct {
	ServiceID      string  `json:"service_id"`
	Name           string  `json:"name"`
	DateOfBirth    string  `json:"date_of_birth"`
	Rank           string  `json:"rank"`
	Regiment       *string `json:"regiment,omitempty"`
	RetirementDate string  `json:"retirement_date"`
	// Pension must be positive; enforced by the store.
	Pension float64 `json:"pension"`
	Awards  *string `json:"awards,omitempty"`
	Skills  *string `json:"skills,omitempty"`
}

// Logistics represents an equipment record keyed by equipment ID.
type Logistics struct {
	EquipmentID string `json:"equipment_id"`
	// Category tags the record as artillery/ships/jets. Informational only;
	// it is not validated against the specialization tables.
	Category   string  `json:"category"`
	Cost       float64 `json:"cost"`
	Procured   string  `json:"procured"`
	Technology *string `json:"technology,omitempty"`
	Location   *string `json:"location,omitempty"`
	// AssignedTo optionally references a ServingPersonnel service ID.
	// Cleared by the store when the referenced personnel row is deleted.
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// Artillery is a specialization row sharing its key with a Logistics row.
// It cannot exist without its parent and is removed when the parent is.
type Artillery struct {
	EquipmentID  string  `json:"equipment_id"`
	RangeKm      float64 `json:"range_km"`
	Commissioned string  `json:"commissioned"`
}

// Ship is a specialization row sharing its key with a Logistics row.
type Ship struct {
	EquipmentID  string `json:"equipment_id"`
	StaffSize    int    `json:"staff_size"`
	Commissioned string `json:"commissioned"`
}

// Jet is a specialization row sharing its key with a Logistics row.
type Jet struct {
	EquipmentID  string  `json:"equipment_id"`
	SpeedKmh     float64 `json:"speed_kmh"`
	Commissioned string  `json:"commissioned"`
}

// Assignment pairs a serving member with the equipment assigned to them,
// used by the assignments report.
type Assignment struct {
	ServiceID   string  `json:"service_id"`
	Name        string  `json:"name"`
	Rank        string  `json:"rank"`
	EquipmentID *string `json:"equipment_id,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// Stats aggregates record counts and monetary totals across the schema.
type Stats struct {
	Users            int64              `json:"users"`
	ServingPersonnel int64              `json:"serving_personnel"`
	RetiredPersonnel int64              `json:"retired_personnel"`
	Equipment        int64              `json:"equipment"`
	TotalSalary      float64            `json:"total_salary"`
	TotalPension     float64            `json:"total_pension"`
	CostByCategory   map[string]float64 `json:"cost_by_category"`
}
