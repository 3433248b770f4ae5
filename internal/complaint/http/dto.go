package http

import (
	"github.com/cargorental/admin-dashboard/internal/complaint"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
)

// ListComplaintsRequest defines query parameters for the complaints list.
type ListComplaintsRequest struct {
	request.ListParams
	Type string `form:"type"`
}

type ComplaintResponse struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	Type            string `json:"type"`
	Subject         string `json:"subject"`
	Description     string `json:"description"`
	FiledBy         string `json:"filed_by"`
	FiledByRole     string `json:"filed_by_role,omitempty"`
	BookingID       *int64 `json:"booking_id,omitempty"`
	Status          string `json:"status"`
	StatusLabel     string `json:"status_label"`
	CreatedAt       string `json:"created_at"`
}

func NewComplaintResponse(v format.View, c complaint.Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:              c.ID,
		ReferenceNumber: c.ReferenceNumber,
		Type:            c.Type,
		Subject:         c.Subject,
		Description:     c.Description,
		FiledBy:         c.FiledBy(),
		BookingID:       c.BookingID,
		Status:          string(c.Status),
		StatusLabel:     c.Status.Label(),
		CreatedAt:       v.ShortDateTime(c.CreatedAt.Time),
	}
	if c.User != nil {
		resp.FiledByRole = c.User.Role
	}
	return resp
}
