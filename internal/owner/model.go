package owner

import (
	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
)

// Status is an owner account's verification state.
type Status string

const (
	StatusWaitingVerification Status = "WAITING_VERIFICATION"
	StatusVerified            Status = "VERIFIED"
	StatusDisabled            Status = "DISABLED"
	StatusRejected            Status = "REJECTED"
)

func (s Status) Label() string {
	switch s {
	case StatusWaitingVerification:
		return "Pending"
	case StatusVerified:
		return "Verified"
	case StatusDisabled:
		return "Disabled"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// DocumentStatus is the review state of a submitted document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

func (s DocumentStatus) Label() string {
	switch s {
	case DocumentPending:
		return "Pending"
	case DocumentApproved:
		return "Approved"
	case DocumentRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

type DocumentFile struct {
	ID              int64        `json:"id"`
	OwnerDocumentID int64        `json:"owner_document_id"`
	FileName        string       `json:"file_name"`
	FileType        string       `json:"file_type"`
	FileFolder      string       `json:"file_folder"`
	FileURL         string       `json:"file_url"`
	CreatedAt       backend.Time `json:"created_at"`
}

// Document is the business-permit submission an owner is verified against.
type Document struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	ReferenceNumber string         `json:"reference_number"`
	Status          DocumentStatus `json:"status"`
	CreatedAt       backend.Time   `json:"created_at"`
	UpdatedAt       backend.Time   `json:"updated_at"`
	Files           []DocumentFile `json:"owner_document_files"`
}

// Owner is a rental business account. The detail endpoint adds its cars and
// latest document; the list endpoint leaves them empty.
type Owner struct {
	ID                     int64         `json:"id"`
	XenditID               string        `json:"xendit_id"`
	FirstName              string        `json:"first_name"`
	LastName               string        `json:"last_name"`
	Email                  string        `json:"email"`
	PhoneNo                string        `json:"phone_no"`
	CarRentalName          string        `json:"car_rental_name"`
	BirthDate              backend.Time  `json:"birth_date"`
	ProfilePicKey          string        `json:"profile_pic_key"`
	ProfileFileFolder      string        `json:"profile_file_folder"`
	Status                 Status        `json:"status"`
	Gender                 string        `json:"gender"`
	Province               string        `json:"province"`
	City                   string        `json:"city"`
	Address                string        `json:"address"`
	NewSubmittedDocumentID *int64        `json:"new_submitted_document_id"`
	CreatedAt              backend.Time  `json:"created_at"`
	Cars                   []vehicle.Car `json:"cars"`
	Documents              *Document     `json:"documents"`
}

func (o Owner) Name() string {
	return format.FullName(o.FirstName, o.LastName)
}

// Disabled reports whether the account is currently disabled.
func (o Owner) Disabled() bool {
	return o.Status == StatusDisabled
}

// CanReview reports whether the owner awaits a verdict on a submitted document.
func (o Owner) CanReview() bool {
	return o.Status == StatusWaitingVerification && o.DocumentID() != 0
}

// DocumentID is the id of the latest submitted document, or 0.
func (o Owner) DocumentID() int64 {
	if o.Documents != nil && o.Documents.ID != 0 {
		return o.Documents.ID
	}
	if o.NewSubmittedDocumentID != nil {
		return *o.NewSubmittedDocumentID
	}
	return 0
}
