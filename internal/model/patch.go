package model

// ListingPatch enumerates the fields an owner may change on their listing.
// Only non-nil fields are applied, so the mutable surface is fixed at compile
// time instead of being whatever keys happen to arrive in the request body.
// Status, moderation flags and ownership are deliberately absent.
type ListingPatch struct {
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	PropertyType *PropertyType `json:"property_type,omitempty"`
	ListingType  *ListingType  `json:"listing_type,omitempty"`

	Street   *string `json:"street,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Pincode  *string `json:"pincode,omitempty"`
	Locality *string `json:"locality,omitempty"`
	Address  *string `json:"address,omitempty"`

	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	Area        *float64 `json:"area,omitempty"`
	AreaUnit    *string  `json:"area_unit,omitempty"`
	Parking     *int     `json:"parking,omitempty"`
	Floor       *int     `json:"floor,omitempty"`
	TotalFloors *int     `json:"total_floors,omitempty"`
	Furnishing  *string  `json:"furnishing,omitempty"`

	Price              *float64 `json:"price,omitempty"`
	PriceType          *string  `json:"price_type,omitempty"`
	MaintenanceCharges *float64 `json:"maintenance_charges,omitempty"`
	SecurityDeposit    *float64 `json:"security_deposit,omitempty"`

	Images       *ImageList  `json:"images,omitempty"`
	Amenities    *StringList `json:"amenities,omitempty"`
	NearbyPlaces *PlaceList  `json:"nearby_places,omitempty"`
}

// Apply copies the supplied fields onto the listing.
func (p *ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.ListingType != nil {
		l.ListingType = *p.ListingType
	}
	if p.Street != nil {
		l.Street = *p.Street
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.State != nil {
		l.State = *p.State
	}
	if p.Pincode != nil {
		l.Pincode = *p.Pincode
	}
	if p.Locality != nil {
		l.Locality = *p.Locality
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		l.Bathrooms = *p.Bathrooms
	}
	if p.Area != nil {
		l.Area = *p.Area
	}
	if p.AreaUnit != nil {
		l.AreaUnit = *p.AreaUnit
	}
	if p.Parking != nil {
		l.Parking = *p.Parking
	}
	if p.Floor != nil {
		l.Floor = *p.Floor
	}
	if p.TotalFloors != nil {
		l.TotalFloors = *p.TotalFloors
	}
	if p.Furnishing != nil {
		l.Furnishing = *p.Furnishing
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.PriceType != nil {
		l.PriceType = *p.PriceType
	}
	if p.MaintenanceCharges != nil {
		l.MaintenanceCharges = *p.MaintenanceCharges
	}
	if p.SecurityDeposit != nil {
		l.SecurityDeposit = *p.SecurityDeposit
	}
	if p.Images != nil {
		l.Images = *p.Images
	}
	if p.Amenities != nil {
		l.Amenities = *p.Amenities
	}
	if p.NearbyPlaces != nil {
		l.NearbyPlaces = *p.NearbyPlaces
	}
}

// ModerationPatch enumerates the admin-mutable moderation fields.
type ModerationPatch struct {
	Status     *ListingStatus `json:"status,omitempty"`
	IsActive   *bool          `json:"is_active,omitempty"`
	IsVerified *bool          `json:"is_verified,omitempty"`
	IsFeatured *bool          `json:"is_featured,omitempty"`
	IsPremium  *bool          `json:"is_premium,omitempty"`
}

// Apply copies the supplied moderation fields onto the listing.
func (p *ModerationPatch) Apply(l *Listing) error {
	if p.Status != nil {
		if !p.Status.Valid() {
			return &ValidationError{Field: "status", Message: "unknown listing status"}
		}
		l.Status = *p.Status
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
	if p.IsVerified != nil {
		l.IsVerified = *p.IsVerified
	}
	if p.IsFeatured != nil {
		l.IsFeatured = *p.IsFeatured
	}
	if p.IsPremium != nil {
		l.IsPremium = *p.IsPremium
	}
	return nil
}
