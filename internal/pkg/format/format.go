// Package format renders values for view models.
package format

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DateLayout          = "January 2, 2006"
	DateTimeLayout      = "January 2, 2006 3:04 PM"
	ShortDateTimeLayout = "Jan 2, 2006 3:04 PM"
)

var printer = message.NewPrinter(language.English)

// Price formats an amount with thousands separators and at most two decimals:
// 12500 is "12,500", 1234.5 is "1,234.5".
func Price(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// PricePtr formats an optional amount; nil is rendered as "".
func PricePtr(v *float64) string {
	if v == nil {
		return ""
	}
	return Price(*v)
}

// Date renders t as "January 2, 2006" in loc. The zero time renders as "".
func Date(t time.Time, loc *time.Location) string {
	return render(t, loc, DateLayout)
}

// DateTime renders t as "January 2, 2006 3:04 PM" in loc.
func DateTime(t time.Time, loc *time.Location) string {
	return render(t, loc, DateTimeLayout)
}

// ShortDateTime renders t as "Jan 2, 2006 3:04 PM" in loc.
func ShortDateTime(t time.Time, loc *time.Location) string {
	return render(t, loc, ShortDateTimeLayout)
}

func render(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

// ImageURL joins the media endpoint, folder and file name. It returns "" when
// folder or name is missing, so callers fall back to a placeholder image.
func ImageURL(endpoint, folder, name string) string {
	if folder == "" || name == "" {
		return ""
	}
	return strings.TrimRight(endpoint, "/") + "/" + strings.Trim(folder, "/") + "/" + name
}

// FullName joins first and last name.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// View carries the presentation settings shared by every view model: the
// zone dates are shown in and the media endpoint images are served from.
type View struct {
	Location      *time.Location
	MediaEndpoint string
}

func (v View) Date(t time.Time) string          { return Date(t, v.Location) }
func (v View) DateTime(t time.Time) string      { return DateTime(t, v.Location) }
func (v View) ShortDateTime(t time.Time) string { return ShortDateTime(t, v.Location) }

// Image builds the public URL of a stored media file.
func (v View) Image(folder, name string) string {
	return ImageURL(v.MediaEndpoint, folder, name)
}

// Loc returns the configured zone, defaulting to the local zone.
func (v View) Loc() *time.Location {
	if v.Location == nil {
		return time.Local
	}
	return v.Location
}

// ThumbnailPath is the dashboard route serving a small rendition of a media
// file, or "" when folder or name is missing.
func ThumbnailPath(folder, name string) string {
	if folder == "" || name == "" {
		return ""
	}
	q := url.Values{}
	q.Set("folder", folder)
	q.Set("name", name)
	return "/media/thumbnail?" + q.Encode()
}
