package model

import "time"

type InquiryStatus string

const (
	InquiryStatusNew           InquiryStatus = "new"
	InquiryStatusContacted     InquiryStatus = "contacted"
	InquiryStatusInterested    InquiryStatus = "interested"
	InquiryStatusNotInterested InquiryStatus = "not-interested"
	InquiryStatusClosed        InquiryStatus = "closed"
)

var validInquiryStatuses = map[InquiryStatus]bool{
	InquiryStatusNew: true, InquiryStatusContacted: true,
	InquiryStatusInterested: true, InquiryStatusNotInterested: true,
	InquiryStatusClosed: true,
}

func (s InquiryStatus) Valid() bool { return validInquiryStatuses[s] }

// Inquiry is a contact request from a prospective buyer or renter.
// ListingID is nil for general inquiries not tied to any listing.
// ListingOwnerID is copied from the listing at creation time and is never
// re-synced if the listing is later reassigned.
type Inquiry struct {
	ID             uint  `json:"id" gorm:"primarykey"`
	ListingID      *uint `json:"listing_id,omitempty" gorm:"index"`
	ListingOwnerID *uint `json:"listing_owner_id,omitempty" gorm:"index"`
	InquirerUserID *uint `json:"inquirer_user_id,omitempty" gorm:"index"`

	Name    string `json:"name" gorm:"type:varchar(150);not null"`
	Email   string `json:"email" gorm:"type:varchar(255);index;not null"`
	Phone   string `json:"phone" gorm:"type:varchar(20);not null"`
	Message string `json:"message" gorm:"type:text"`

	Status      InquiryStatus `json:"status" gorm:"type:varchar(16);default:'new';index"`
	Response    string        `json:"response,omitempty" gorm:"type:text"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`

	FollowUpCount int `json:"follow_up_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}
