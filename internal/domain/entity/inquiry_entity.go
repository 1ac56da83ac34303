package entity

import "time"

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryClosed    InquiryStatus = "closed"
)

// ParseInquiryStatus reports whether s names a known status.
func ParseInquiryStatus(s string) (InquiryStatus, bool) {
	switch st := InquiryStatus(s); st {
	case InquiryNew, InquiryContacted, InquiryClosed:
		return st, true
	}
	return "", false
}

// Inquiry is a buyer request tied to one listing.
// BuyerEmail and Message are optional.
type Inquiry struct {
	ID         string
	ListingID  string
	BuyerName  string
	BuyerPhone string
	BuyerEmail *string
	Quantity   int
	Message    *string
	Status     InquiryStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
