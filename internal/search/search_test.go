package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/database"
)

var seedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func seedListing(t *testing.T, db *gorm.DB, mutate func(*model.Listing)) model.Listing {
	t.Helper()
	l := model.Listing{
		Title:        "2 BHK Apartment in Andheri",
		Description:  "Spacious flat close to the metro",
		PropertyType: model.PropertyApartment,
		ListingType:  model.ListingRent,
		City:         "Mumbai",
		State:        "Maharashtra",
		Locality:     "Andheri West",
		Address:      "12 Link Road, Andheri West",
		Pincode:      "400053",
		Bedrooms:     2,
		Bathrooms:    2,
		Parking:      1,
		Area:         950,
		Price:        45000,
		UserID:       1,
		UserType:     model.RoleSeller,
		IsActive:     true,
		Status:       model.ListingStatusApproved,
		CreatedAt:    seedTime,
	}
	if mutate != nil {
		mutate(&l)
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func TestSearchDefaults(t *testing.T) {
	db := database.NewTestDB(t)

	older := seedListing(t, db, func(l *model.Listing) { l.CreatedAt = seedTime.Add(-48 * time.Hour) })
	newer := seedListing(t, db, func(l *model.Listing) { l.CreatedAt = seedTime })
	seedListing(t, db, func(l *model.Listing) { l.IsActive = false })

	listings, pagination, err := Search(db, Params{})
	require.NoError(t, err)

	// Inactive listings never surface, newest first.
	require.Len(t, listings, 2)
	assert.Equal(t, newer.ID, listings[0].ID)
	assert.Equal(t, older.ID, listings[1].ID)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, int64(2), pagination.Total)
	assert.Equal(t, 1, pagination.TotalPages)
	assert.False(t, pagination.HasMore)
}

func TestSearchPriceRange(t *testing.T) {
	db := database.NewTestDB(t)

	seedListing(t, db, func(l *model.Listing) { l.Price = 90000 })
	mid := seedListing(t, db, func(l *model.Listing) { l.Price = 250000 })
	seedListing(t, db, func(l *model.Listing) { l.Price = 700000 })

	listings, _, err := Search(db, Params{"minPrice": "100000", "maxPrice": "500000"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, mid.ID, listings[0].ID)

	// Min-only and max-only partial ranges.
	listings, _, err = Search(db, Params{"minPrice": "100000"})
	require.NoError(t, err)
	assert.Len(t, listings, 2)

	listings, _, err = Search(db, Params{"maxPrice": "100000"})
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	// A malformed bound is no constraint, not an error.
	listings, _, err = Search(db, Params{"minPrice": "cheap"})
	require.NoError(t, err)
	assert.Len(t, listings, 3)
}

func TestSearchBedroomThreshold(t *testing.T) {
	db := database.NewTestDB(t)

	two := seedListing(t, db, func(l *model.Listing) { l.Bedrooms = 2 })
	four := seedListing(t, db, func(l *model.Listing) { l.Bedrooms = 4 })
	six := seedListing(t, db, func(l *model.Listing) { l.Bedrooms = 6 })

	listings, _, err := Search(db, Params{"bedrooms": "4+"})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	ids := []uint{listings[0].ID, listings[1].ID}
	assert.Contains(t, ids, four.ID)
	assert.Contains(t, ids, six.ID)

	listings, _, err = Search(db, Params{"bedrooms": "2"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, two.ID, listings[0].ID)
}

func TestSearchAmenities(t *testing.T) {
	db := database.NewTestDB(t)

	withGym := seedListing(t, db, func(l *model.Listing) {
		l.Amenities = model.StringList{"pool", "gym"}
	})
	seedListing(t, db, func(l *model.Listing) {
		l.Amenities = model.StringList{"garden"}
	})

	listings, _, err := Search(db, Params{"amenities": "gym"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, withGym.ID, listings[0].ID)

	// Any-of: one match in the list is enough.
	listings, _, err = Search(db, Params{"amenities": "gym,sauna"})
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	listings, _, err = Search(db, Params{"amenities": "sauna"})
	require.NoError(t, err)
	assert.Len(t, listings, 0)
}

func TestSearchFreeText(t *testing.T) {
	db := database.NewTestDB(t)

	inTitle := seedListing(t, db, func(l *model.Listing) { l.Title = "Sea-facing penthouse" })
	inLocality := seedListing(t, db, func(l *model.Listing) {
		l.Title = "3 BHK"
		l.Description = "well lit"
		l.Locality = "Penthouse Lane"
		l.Address = "5 Penthouse Lane"
	})
	seedListing(t, db, func(l *model.Listing) { l.Title = "Plot in Pune"; l.Description = "corner plot" })

	listings, _, err := Search(db, Params{"search": "PENTHOUSE"})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	ids := []uint{listings[0].ID, listings[1].ID}
	assert.Contains(t, ids, inTitle.ID)
	assert.Contains(t, ids, inLocality.ID)

	// Free text ANDs with structured filters.
	listings, _, err = Search(db, Params{"search": "penthouse", "city": "delhi"})
	require.NoError(t, err)
	assert.Len(t, listings, 0)
}

func TestSearchInfixAndExactFilters(t *testing.T) {
	db := database.NewTestDB(t)

	mumbai := seedListing(t, db, nil)
	seedListing(t, db, func(l *model.Listing) {
		l.City = "Pune"
		l.PropertyType = model.PropertyVilla
	})

	// Substring, case-insensitive.
	listings, _, err := Search(db, Params{"city": "mumb"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, mumbai.ID, listings[0].ID)

	// Enumerated fields match exactly; unrecognized values pass through
	// and simply match nothing.
	listings, _, err = Search(db, Params{"propertyType": "villa"})
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	listings, _, err = Search(db, Params{"propertyType": "vill"})
	require.NoError(t, err)
	assert.Len(t, listings, 0)
}

func TestSearchPopularSort(t *testing.T) {
	db := database.NewTestDB(t)

	tied := seedListing(t, db, func(l *model.Listing) { l.Views = 100; l.Inquiries = 2 })
	top := seedListing(t, db, func(l *model.Listing) { l.Views = 100; l.Inquiries = 9 })
	seedListing(t, db, func(l *model.Listing) { l.Views = 5; l.Inquiries = 50 })

	listings, _, err := Search(db, Params{"sort": "popular"})
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, top.ID, listings[0].ID)
	assert.Equal(t, tied.ID, listings[1].ID)
}

func TestSearchPagination(t *testing.T) {
	db := database.NewTestDB(t)

	for i := 0; i < 7; i++ {
		seedListing(t, db, func(l *model.Listing) {
			l.CreatedAt = seedTime.Add(time.Duration(i) * time.Hour)
		})
	}

	listings, pagination, err := Search(db, Params{"limit": "3", "page": "2"})
	require.NoError(t, err)
	assert.Len(t, listings, 3)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, int64(7), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasMore)

	listings, pagination, err = Search(db, Params{"limit": "3", "page": "3"})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.False(t, pagination.HasMore)
}

func TestAdminSearch(t *testing.T) {
	db := database.NewTestDB(t)

	seedListing(t, db, nil)
	inactive := seedListing(t, db, func(l *model.Listing) {
		l.IsActive = false
		l.Status = model.ListingStatusPending
	})
	verified := seedListing(t, db, func(l *model.Listing) { l.IsVerified = true })

	// Admin sees inactive listings by default.
	listings, _, err := SearchAdmin(db, Params{})
	require.NoError(t, err)
	assert.Len(t, listings, 3)

	listings, _, err = SearchAdmin(db, Params{"status": "pending"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, inactive.ID, listings[0].ID)

	listings, _, err = SearchAdmin(db, Params{"isVerified": "true"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, verified.ID, listings[0].ID)

	// Non-boolean flag values are skipped, not errors.
	listings, _, err = SearchAdmin(db, Params{"isVerified": "maybe"})
	require.NoError(t, err)
	assert.Len(t, listings, 3)
}

func TestCountByPropertyType(t *testing.T) {
	db := database.NewTestDB(t)

	seedListing(t, db, nil)
	seedListing(t, db, nil)
	seedListing(t, db, func(l *model.Listing) { l.PropertyType = model.PropertyVilla })
	seedListing(t, db, func(l *model.Listing) { l.IsActive = false })

	counts, err := CountByPropertyType(db)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "apartment", counts[0].Value)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, "villa", counts[1].Value)
	assert.Equal(t, int64(1), counts[1].Count)
}
