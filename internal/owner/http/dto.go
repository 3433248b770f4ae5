package http

import (
	"strconv"

	"github.com/cargorental/admin-dashboard/internal/owner"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
)

// ListOwnersRequest defines query parameters for the rentals list.
type ListOwnersRequest struct {
	request.ListParams
	Province string `form:"province"`
}

// OwnerCarsRequest filters the car list on the owner detail view.
type OwnerCarsRequest struct {
	request.ListParams
	VehicleType string `form:"vehicle_type"`
}

type OwnerURI struct {
	OwnerID string `uri:"owner_id" binding:"required,numeric"`
}

type DocumentVerdictURI struct {
	OwnerID    string `uri:"owner_id" binding:"required,numeric"`
	DocumentID string `uri:"document_id" binding:"required,numeric"`
}

type VerdictRequest struct {
	Verdict string `json:"verdict" binding:"required"`
}

// DisableRequest is the body of a disable call. The reason is checked by the
// verdict workflow so that a blank one gets the same error everywhere.
type DisableRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type OwnerListItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	RentalName  string `json:"rental_name"`
	Email       string `json:"email"`
	PhoneNo     string `json:"phone_no"`
	Province    string `json:"province"`
	City        string `json:"city"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	DetailPath  string `json:"detail_path"`
	CreatedAt   string `json:"created_at"`
}

func NewOwnerListItem(v format.View, o owner.Owner) OwnerListItem {
	return OwnerListItem{
		ID:          o.ID,
		Name:        o.Name(),
		RentalName:  o.CarRentalName,
		Email:       o.Email,
		PhoneNo:     o.PhoneNo,
		Province:    o.Province,
		City:        o.City,
		AvatarURL:   v.Image(o.ProfileFileFolder, o.ProfilePicKey),
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		DetailPath:  "/rentals/" + strconv.FormatInt(o.ID, 10),
		CreatedAt:   v.ShortDateTime(o.CreatedAt.Time),
	}
}

type FileResponse struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	ThumbURL string `json:"thumbnail_url,omitempty"`
}

type DocumentResponse struct {
	ID              int64          `json:"id"`
	ReferenceNumber string         `json:"reference_number"`
	Status          string         `json:"status"`
	StatusLabel     string         `json:"status_label"`
	SubmittedAt     string         `json:"submitted_at"`
	Files           []FileResponse `json:"files"`
}

// OwnerCarItem is one row of the owner's car list.
type OwnerCarItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Year        *int   `json:"year,omitempty"`
	VehicleType string `json:"vehicle_type"`
	NumberPlate string `json:"number_plate"`
	PriceRate   string `json:"price_rate"`
	ImageURL    string `json:"image_url,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	DetailPath  string `json:"detail_path"`
}

// carLabel differs from the vehicles list: an approved car is shown as
// available on the owner page.
func carLabel(s vehicle.Status) string {
	if s == vehicle.StatusAvailable {
		return "Available"
	}
	return s.Label()
}

func NewOwnerCarItem(v format.View, c vehicle.Car) OwnerCarItem {
	item := OwnerCarItem{
		ID:          c.ID,
		Name:        c.Name(),
		Year:        c.Year,
		VehicleType: c.VehicleType,
		NumberPlate: c.NumberPlate,
		PriceRate:   format.PricePtr(c.PriceRate),
		Status:      string(c.Status),
		StatusLabel: carLabel(c.Status),
		DetailPath:  "/vehicles/" + strconv.FormatInt(c.ID, 10),
	}
	if img, ok := c.Cover(); ok {
		item.ImageURL = v.Image(img.FileFolder, img.ImageName)
	}
	return item
}

type OwnerDetailResponse struct {
	ID          int64             `json:"id"`
	XenditID    string            `json:"xendit_id"`
	RentalName  string            `json:"rental_name"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	PhoneNo     string            `json:"phone_no"`
	Gender      string            `json:"gender"`
	BirthDate   string            `json:"birth_date"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	Province    string            `json:"province"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
	Status      string            `json:"status"`
	StatusLabel string            `json:"status_label"`
	Disabled    bool              `json:"disabled"`
	CanReview   bool              `json:"can_review"`
	Document    *DocumentResponse `json:"document,omitempty"`
	JoinedAt    string            `json:"joined_at"`
	// Cars is the filtered page of the owner's cars.
	Cars response.ListResponse[OwnerCarItem] `json:"cars"`
}

func NewOwnerDetailResponse(v format.View, o *owner.Owner, cars response.ListResponse[OwnerCarItem]) OwnerDetailResponse {
	resp := OwnerDetailResponse{
		ID:          o.ID,
		XenditID:    o.XenditID,
		RentalName:  o.CarRentalName,
		Name:        o.Name(),
		Email:       o.Email,
		PhoneNo:     o.PhoneNo,
		Gender:      o.Gender,
		BirthDate:   v.Date(o.BirthDate.Time),
		Address:     o.Address,
		City:        o.City,
		Province:    o.Province,
		AvatarURL:   v.Image(o.ProfileFileFolder, o.ProfilePicKey),
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		Disabled:    o.Disabled(),
		CanReview:   o.CanReview(),
		JoinedAt:    v.Date(o.CreatedAt.Time),
		Cars:        cars,
	}

	if d := o.Documents; d != nil {
		doc := &DocumentResponse{
			ID:              d.ID,
			ReferenceNumber: d.ReferenceNumber,
			Status:          string(d.Status),
			StatusLabel:     d.Status.Label(),
			SubmittedAt:     v.DateTime(d.CreatedAt.Time),
			Files:           make([]FileResponse, 0, len(d.Files)),
		}
		for _, f := range d.Files {
			doc.Files = append(doc.Files, FileResponse{
				Name:     f.FileName,
				Type:     f.FileType,
				URL:      v.Image(f.FileFolder, f.FileName),
				ThumbURL: format.ThumbnailPath(f.FileFolder, f.FileName),
			})
		}
		resp.Document = doc
	}
	return resp
}
