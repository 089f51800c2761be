package model

import (
	"regexp"
	"time"
)

type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyVilla      PropertyType = "villa"
	PropertyPlot       PropertyType = "plot"
	PropertyCommercial PropertyType = "commercial"
	PropertyOffice     PropertyType = "office"
	PropertyShop       PropertyType = "shop"
	PropertyWarehouse  PropertyType = "warehouse"
	PropertyOther      PropertyType = "other"
)

type ListingType string

const (
	ListingSale  ListingType = "sale"
	ListingRent  ListingType = "rent"
	ListingLease ListingType = "lease"
)

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
	ListingStatusArchived ListingStatus = "archived"
)

// Listing represents a property offered for sale, rent or lease.
type Listing struct {
	ID           uint         `json:"id" gorm:"primarykey"`
	Title        string       `json:"title" gorm:"type:varchar(255);not null"`
	Description  string       `json:"description" gorm:"type:text"`
	PropertyType PropertyType `json:"property_type" gorm:"type:varchar(32);index"`
	ListingType  ListingType  `json:"listing_type" gorm:"type:varchar(16);index"`

	Street   string `json:"street" gorm:"type:varchar(255)"`
	City     string `json:"city" gorm:"type:varchar(100);index"`
	State    string `json:"state" gorm:"type:varchar(100)"`
	Pincode  string `json:"pincode" gorm:"type:varchar(10)"`
	Locality string `json:"locality" gorm:"type:varchar(150)"`
	Address  string `json:"address" gorm:"type:varchar(500)"`

	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Area        float64 `json:"area"`
	AreaUnit    string  `json:"area_unit" gorm:"type:varchar(16);default:'sqft'"`
	Parking     int     `json:"parking"`
	Floor       int     `json:"floor"`
	TotalFloors int     `json:"total_floors"`
	Furnishing  string  `json:"furnishing" gorm:"type:varchar(32)"`

	Price              float64 `json:"price" gorm:"index;not null"`
	PriceType          string  `json:"price_type" gorm:"type:varchar(32)"`
	MaintenanceCharges float64 `json:"maintenance_charges"`
	SecurityDeposit    float64 `json:"security_deposit"`

	Images       ImageList  `json:"images" gorm:"type:text"`
	Amenities    StringList `json:"amenities" gorm:"type:text"`
	NearbyPlaces PlaceList  `json:"nearby_places" gorm:"type:text"`

	// Owning user. Every listing has exactly one owner.
	UserID   uint     `json:"user_id" gorm:"index;not null"`
	UserType UserRole `json:"user_type" gorm:"type:varchar(16)"`

	IsActive   bool          `json:"is_active" gorm:"default:true;index"`
	IsVerified bool          `json:"is_verified" gorm:"default:false"`
	IsFeatured bool          `json:"is_featured" gorm:"default:false"`
	IsPremium  bool          `json:"is_premium" gorm:"default:false"`
	Status     ListingStatus `json:"status" gorm:"type:varchar(16);default:'pending';index"`

	Views     int64 `json:"views" gorm:"default:0"`
	Inquiries int64 `json:"inquiries" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

var validPropertyTypes = map[PropertyType]bool{
	PropertyApartment: true, PropertyHouse: true, PropertyVilla: true,
	PropertyPlot: true, PropertyCommercial: true, PropertyOffice: true,
	PropertyShop: true, PropertyWarehouse: true, PropertyOther: true,
}

var validListingTypes = map[ListingType]bool{
	ListingSale: true, ListingRent: true, ListingLease: true,
}

var validListingStatuses = map[ListingStatus]bool{
	ListingStatusPending: true, ListingStatusApproved: true,
	ListingStatusRejected: true, ListingStatusArchived: true,
}

func (s ListingStatus) Valid() bool { return validListingStatuses[s] }

// Validate checks write-time invariants. Read-side filters deliberately do
// not validate enum values, so this is the single gate for bad data.
func (l *Listing) Validate() error {
	if l.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if !validPropertyTypes[l.PropertyType] {
		return &ValidationError{Field: "property_type", Message: "unknown property type"}
	}
	if !validListingTypes[l.ListingType] {
		return &ValidationError{Field: "listing_type", Message: "unknown listing type"}
	}
	if l.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if l.Area < 0 {
		return &ValidationError{Field: "area", Message: "area must not be negative"}
	}
	if l.Bedrooms < 0 || l.Bathrooms < 0 || l.Parking < 0 {
		return &ValidationError{Field: "rooms", Message: "room counts must not be negative"}
	}
	if l.Pincode != "" && !pincodePattern.MatchString(l.Pincode) {
		return &ValidationError{Field: "pincode", Message: "pincode must be 6 digits"}
	}
	if l.UserID == 0 {
		return &ValidationError{Field: "user_id", Message: "listing must have an owner"}
	}
	return nil
}
