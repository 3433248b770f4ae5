package vehicle

import (
	"github.com/cargorental/admin-dashboard/internal/backend"
)

// Status is a car's listing status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAvailable Status = "AVAILABLE"
	StatusArchived  Status = "ARCHIVED"
	StatusRejected  Status = "REJECTED"
)

// Label is the status as the dashboard shows it.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusAvailable:
		return "Approved"
	case StatusArchived:
		return "Archived"
	case StatusRejected:
		return "Declined"
	default:
		return "Unknown"
	}
}

type Image struct {
	ID         int64  `json:"id"`
	ImageName  string `json:"image_name"`
	FileFolder string `json:"file_folder"`
}

type Feature struct {
	ID   int64  `json:"id"`
	Name string `json:"feature_name"`
}

type Rule struct {
	ID   int64  `json:"id"`
	Name string `json:"rule_name"`
}

type Coding struct {
	ID  int64  `json:"id"`
	Day string `json:"coding_day_value"`
}

type DocumentFile struct {
	ID         int64        `json:"id"`
	FileName   string       `json:"file_name"`
	FileType   string       `json:"file_type"`
	FileFolder string       `json:"file_folder"`
	FileURL    string       `json:"file_url"`
	CreatedAt  backend.Time `json:"created_at"`
}

// Document is the latest registration document submitted for a car.
type Document struct {
	ID              int64          `json:"id"`
	ReferenceNumber string         `json:"reference_number"`
	Status          string         `json:"status"`
	CreatedAt       backend.Time   `json:"created_at"`
	Files           []DocumentFile `json:"car_document_files"`
}

// OwnerRef is the rental business a car belongs to.
type OwnerRef struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	CarRentalName     string `json:"car_rental_name"`
	ProfilePicKey     string `json:"profile_pic_key"`
	ProfileFileFolder string `json:"profile_file_folder"`
}

// Car is a vehicle as the backend returns it.
type Car struct {
	ID                        int64        `json:"id"`
	UserID                    int64        `json:"user_id"`
	Brand                     string       `json:"car_brand"`
	Model                     string       `json:"car_model"`
	Year                      *int         `json:"car_year"`
	Transmission              string       `json:"car_transmission"`
	FuelType                  string       `json:"car_fuel_type"`
	NumberPlate               string       `json:"car_number_plate"`
	Seats                     *int         `json:"no_of_seats"`
	VehicleType               string       `json:"vehicle_type"`
	RateType                  string       `json:"rate_type"`
	PriceRate                 *float64     `json:"price_rate"`
	DownPaymentPrice          *float64     `json:"down_payment_price"`
	RefundPercentage          *float64     `json:"refund_percentage"`
	LateReturnPercentage      *float64     `json:"late_return_percentage"`
	IsRefundable              *bool        `json:"is_refundable"`
	IsWithDriver              string       `json:"is_with_driver"`
	Status                    Status       `json:"status"`
	IsAvailable               *bool        `json:"is_available"`
	DeliveryFee               *float64     `json:"delivery_fee"`
	LatestSubmittedDocumentID *int64       `json:"latest_submitted_document_id"`
	CreatedAt                 backend.Time `json:"created_at"`
	UpdatedAt                 backend.Time `json:"updated_at"`
	Images                    []Image      `json:"car_images"`
	Features                  []Feature    `json:"car_features"`
	Coding                    []Coding     `json:"car_coding"`
	Rules                     []Rule       `json:"car_rules"`
	Owner                     *OwnerRef    `json:"owner"`
	Documents                 *Document    `json:"documents"`
}

// Name is "<brand> <model>".
func (c Car) Name() string {
	if c.Model == "" {
		return c.Brand
	}
	return c.Brand + " " + c.Model
}

// RentalName is the owning business's name, or "".
func (c Car) RentalName() string {
	if c.Owner == nil {
		return ""
	}
	return c.Owner.CarRentalName
}

// Cover is the first image, if any.
func (c Car) Cover() (Image, bool) {
	if len(c.Images) == 0 {
		return Image{}, false
	}
	return c.Images[0], true
}

// PendingDocumentID is the id of the document awaiting a verdict, or 0.
func (c Car) PendingDocumentID() int64 {
	if c.Documents != nil && c.Documents.ID != 0 {
		return c.Documents.ID
	}
	if c.LatestSubmittedDocumentID != nil {
		return *c.LatestSubmittedDocumentID
	}
	return 0
}
