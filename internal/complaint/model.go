package complaint

import (
	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusResolved  Status = "RESOLVED"
	StatusDismissed Status = "DISMISSED"
)

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusResolved:
		return "Resolved"
	case StatusDismissed:
		return "Dismissed"
	default:
		return "Unknown"
	}
}

// Complainant is the user who filed a complaint.
type Complainant struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Complaint is a report filed by a renter or an owner.
type Complaint struct {
	ID              int64        `json:"id"`
	ReferenceNumber string       `json:"reference_number"`
	Type            string       `json:"complaint_type"`
	Subject         string       `json:"subject"`
	Description     string       `json:"description"`
	Status          Status       `json:"status"`
	BookingID       *int64       `json:"booking_id"`
	CreatedAt       backend.Time `json:"created_at"`
	User            *Complainant `json:"user"`
}

// FiledBy is the complainant's full name.
func (c Complaint) FiledBy() string {
	if c.User == nil {
		return ""
	}
	return format.FullName(c.User.FirstName, c.User.LastName)
}
