package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/database"
)

func TestFavoriteAddIdempotent(t *testing.T) {
	db := database.NewTestDB(t)
	h := &FavoriteHandler{DB: db}
	listing := createListing(t, db, 1)
	body := fmt.Sprintf(`{"listing_id": %d}`, listing.ID)

	c, rec := newContext(t, http.MethodPost, "/api/favorites", body)
	asOwner(c, 7, model.RoleBuyer)
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Saving again returns the existing favorite rather than erroring.
	c, rec = newContext(t, http.MethodPost, "/api/favorites", body)
	asOwner(c, 7, model.RoleBuyer)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&model.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteAddInactiveListing(t *testing.T) {
	db := database.NewTestDB(t)
	h := &FavoriteHandler{DB: db}
	listing := createListing(t, db, 1)
	require.NoError(t, db.Model(&model.Listing{}).
		Where("id = ?", listing.ID).
		Update("is_active", false).Error)

	c, rec := newContext(t, http.MethodPost, "/api/favorites",
		fmt.Sprintf(`{"listing_id": %d}`, listing.ID))
	asOwner(c, 7, model.RoleBuyer)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteRemoveAndList(t *testing.T) {
	db := database.NewTestDB(t)
	h := &FavoriteHandler{DB: db}
	listing := createListing(t, db, 1)
	other := createListing(t, db, 1)

	for _, id := range []uint{listing.ID, other.ID} {
		c, rec := newContext(t, http.MethodPost, "/api/favorites",
			fmt.Sprintf(`{"listing_id": %d}`, id))
		asOwner(c, 7, model.RoleBuyer)
		require.NoError(t, h.Add(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	c, rec := newContext(t, http.MethodDelete, "/api/favorites/"+strconv.Itoa(int(other.ID)), "")
	asOwner(c, 7, model.RoleBuyer)
	c.SetParamNames("listing_id")
	c.SetParamValues(strconv.Itoa(int(other.ID)))
	require.NoError(t, h.Remove(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Removing a favorite that is not there reads as missing.
	c, rec = newContext(t, http.MethodDelete, "/api/favorites/"+strconv.Itoa(int(other.ID)), "")
	asOwner(c, 7, model.RoleBuyer)
	c.SetParamNames("listing_id")
	c.SetParamValues(strconv.Itoa(int(other.ID)))
	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(t, http.MethodGet, "/api/favorites", "")
	asOwner(c, 7, model.RoleBuyer)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Favorites []model.Favorite `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Favorites, 1)
	assert.Equal(t, listing.ID, resp.Favorites[0].ListingID)
	assert.Equal(t, listing.Title, resp.Favorites[0].Listing.Title)
}
