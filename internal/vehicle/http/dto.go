package http

import (
	"strconv"

	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
)

// ListVehiclesRequest defines query parameters for the vehicles list.
type ListVehiclesRequest struct {
	request.ListParams
	VehicleType string `form:"vehicle_type"`
}

// VehicleURI binds the :vehicle_id path parameter.
type VehicleURI struct {
	VehicleID string `uri:"vehicle_id" binding:"required,numeric"`
}

// DocumentVerdictURI binds the vehicle and document path parameters.
type DocumentVerdictURI struct {
	VehicleID  string `uri:"vehicle_id" binding:"required,numeric"`
	DocumentID string `uri:"document_id" binding:"required,numeric"`
}

// VerdictRequest is the body of a vehicle document verdict.
type VerdictRequest struct {
	Verdict string `json:"verdict" binding:"required"`
	Reason  string `json:"reason"`
}

type VehicleListItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Year         *int   `json:"year,omitempty"`
	NumberPlate  string `json:"number_plate"`
	VehicleType  string `json:"vehicle_type"`
	Status       string `json:"status"`
	StatusLabel  string `json:"status_label"`
	RentalName   string `json:"rental_name"`
	ImageURL     string `json:"image_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func NewVehicleListItem(v format.View, c vehicle.Car) VehicleListItem {
	item := VehicleListItem{
		ID:          c.ID,
		Name:        c.Name(),
		Year:        c.Year,
		NumberPlate: c.NumberPlate,
		VehicleType: c.VehicleType,
		Status:      string(c.Status),
		StatusLabel: c.Status.Label(),
		RentalName:  c.RentalName(),
		CreatedAt:   v.ShortDateTime(c.CreatedAt.Time),
	}
	if img, ok := c.Cover(); ok {
		item.ImageURL = v.Image(img.FileFolder, img.ImageName)
		item.ThumbnailURL = format.ThumbnailPath(img.FileFolder, img.ImageName)
	}
	return item
}

type OwnerTag struct {
	ID         int64  `json:"id"`
	RentalName string `json:"rental_name"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	DetailPath string `json:"detail_path"`
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
	SubmittedAt     string         `json:"submitted_at"`
	Files           []FileResponse `json:"files"`
}

type PricingResponse struct {
	RateType             string `json:"rate_type"`
	PriceRate            string `json:"price_rate"`
	DeliveryFee          string `json:"delivery_fee"`
	DownPayment          string `json:"down_payment"`
	IsRefundable         bool   `json:"is_refundable"`
	RefundPercentage     string `json:"refund_percentage,omitempty"`
	LateReturnPercentage string `json:"late_return_percentage,omitempty"`
}

type VehicleDetailResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Year         *int              `json:"year,omitempty"`
	VehicleType  string            `json:"vehicle_type"`
	FuelType     string            `json:"fuel_type"`
	Transmission string            `json:"transmission"`
	NumberPlate  string            `json:"number_plate"`
	Seats        *int              `json:"seats,omitempty"`
	WithDriver   string            `json:"with_driver"`
	Status       string            `json:"status"`
	StatusLabel  string            `json:"status_label"`
	Images       []string          `json:"images"`
	Owner        *OwnerTag         `json:"owner,omitempty"`
	Pricing      PricingResponse   `json:"pricing"`
	Coding       []string          `json:"coding"`
	Features     []string          `json:"features"`
	Rules        []string          `json:"rules"`
	Document     *DocumentResponse `json:"document,omitempty"`
	// CanReview is true when the car awaits a verdict on a submitted document.
	CanReview bool   `json:"can_review"`
	CreatedAt string `json:"created_at"`
}

func percent(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64) + "%"
}

func peso(p *float64) string {
	if p == nil {
		return "PHP 0.00"
	}
	return "PHP " + format.Price(*p)
}

func NewVehicleDetailResponse(v format.View, c *vehicle.Car) VehicleDetailResponse {
	resp := VehicleDetailResponse{
		ID:           c.ID,
		Name:         c.Name(),
		Year:         c.Year,
		VehicleType:  c.VehicleType,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		NumberPlate:  c.NumberPlate,
		Seats:        c.Seats,
		WithDriver:   c.IsWithDriver,
		Status:       string(c.Status),
		StatusLabel:  c.Status.Label(),
		Images:       make([]string, 0, len(c.Images)),
		Coding:       make([]string, 0, len(c.Coding)),
		Features:     make([]string, 0, len(c.Features)),
		Rules:        make([]string, 0, len(c.Rules)),
		CanReview:    c.Status == vehicle.StatusPending && c.PendingDocumentID() != 0,
		CreatedAt:    v.Date(c.CreatedAt.Time),
	}
	for _, img := range c.Images {
		if u := v.Image(img.FileFolder, img.ImageName); u != "" {
			resp.Images = append(resp.Images, u)
		}
	}
	for _, cd := range c.Coding {
		resp.Coding = append(resp.Coding, cd.Day)
	}
	for _, f := range c.Features {
		resp.Features = append(resp.Features, f.Name)
	}
	for _, r := range c.Rules {
		resp.Rules = append(resp.Rules, r.Name)
	}

	resp.Pricing = PricingResponse{
		RateType:     c.RateType,
		PriceRate:    peso(c.PriceRate),
		DeliveryFee:  peso(c.DeliveryFee),
		DownPayment:  peso(c.DownPaymentPrice),
		IsRefundable: c.IsRefundable != nil && *c.IsRefundable,
	}
	if resp.Pricing.IsRefundable {
		resp.Pricing.RefundPercentage = percent(c.RefundPercentage)
	}
	if c.IsWithDriver == "without_driver" {
		resp.Pricing.LateReturnPercentage = percent(c.LateReturnPercentage)
	}

	if o := c.Owner; o != nil {
		resp.Owner = &OwnerTag{
			ID:         o.ID,
			RentalName: o.CarRentalName,
			Name:       format.FullName(o.FirstName, o.LastName),
			AvatarURL:  v.Image(o.ProfileFileFolder, o.ProfilePicKey),
			DetailPath: "/rentals/" + strconv.FormatInt(o.ID, 10),
		}
	}

	if d := c.Documents; d != nil {
		doc := &DocumentResponse{
			ID:              d.ID,
			ReferenceNumber: d.ReferenceNumber,
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
