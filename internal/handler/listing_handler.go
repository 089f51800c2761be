package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/middleware"
	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/internal/search"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
	"github.com/radheshyamgupta01/TLF-sub001/prometheus"
)

// ListingHandler serves the public search surface and owner CRUD.
type ListingHandler struct {
	DB *gorm.DB
}

// Search handles the public listing search with filters, sort and pagination.
func (h *ListingHandler) Search(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordListingOperation("search")

	defer prometheus.TrackDBOperation("query")(time.Now())
	listings, pagination, err := search.Search(h.DB, queryParams(c))
	if err != nil {
		log.Error("listing search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search listings"})
	}

	log.Info("listings searched",
		zap.Int("count", len(listings)),
		zap.Int64("total", pagination.Total))
	return c.JSON(http.StatusOK, echo.Map{
		"listings":   listings,
		"pagination": pagination,
	})
}

// Stats returns aggregate counts of active listings for the browse pages.
func (h *ListingHandler) Stats(c echo.Context) error {
	log := logger.FromEcho(c)

	byType, err := search.CountByPropertyType(h.DB)
	if err != nil {
		log.Error("listing aggregation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate listings"})
	}
	byCity, err := search.CountByCity(h.DB)
	if err != nil {
		log.Error("listing aggregation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate listings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"by_property_type": byType,
		"by_city":          byCity,
	})
}

// Get returns a single active listing and bumps its view counter.
func (h *ListingHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	var listing model.Listing
	result := h.DB.Where("id = ? AND is_active = ?", id, true).First(&listing)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Error("failed to load listing", zap.Uint("listing_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load listing"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	// View counting is best effort and never fails the read.
	err = h.DB.Model(&model.Listing{}).
		Where("id = ?", listing.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		log.Warn("failed to bump view counter", zap.Uint("listing_id", listing.ID), zap.Error(err))
	} else {
		listing.Views++
	}
	prometheus.ListingViewsCounter.Inc()

	return c.JSON(http.StatusOK, listing)
}

// Create handles a new listing submission. Listings start pending and
// active, owned by the caller.
func (h *ListingHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var listing model.Listing
	if err := c.Bind(&listing); err != nil {
		log.Error("failed to parse listing request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	role, _ := c.Get("user_role").(string)
	listing.ID = 0
	listing.UserID = userID
	listing.UserType = model.UserRole(role)
	listing.Status = model.ListingStatusPending
	listing.IsActive = true
	listing.IsVerified = false
	listing.IsFeatured = false
	listing.IsPremium = false
	listing.Views = 0
	listing.Inquiries = 0

	if err := listing.Validate(); err != nil {
		return validationFailure(c, err)
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.DB.Create(&listing); result.Error != nil {
		log.Error("failed to create listing", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create listing"})
	}

	prometheus.RecordListingOperation("create")
	log.Info("listing created",
		zap.Uint("listing_id", listing.ID),
		zap.Uint("user_id", userID),
		zap.String("city", listing.City))
	return c.JSON(http.StatusCreated, listing)
}

// Update applies an owner patch to a listing. Owner scoping is part of the
// lookup, so a foreign listing is indistinguishable from a missing one.
func (h *ListingHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	var patch model.ListingPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("failed to parse listing patch", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var listing model.Listing
	result := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&listing)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	patch.Apply(&listing)
	if err := listing.Validate(); err != nil {
		return validationFailure(c, err)
	}

	if result := h.DB.Save(&listing); result.Error != nil {
		log.Error("failed to update listing", zap.Uint("listing_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update listing"})
	}

	prometheus.RecordListingOperation("update")
	log.Info("listing updated", zap.Uint("listing_id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, listing)
}

// Delete soft-deletes an owned listing by clearing is_active. Rows are
// never removed.
func (h *ListingHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	result := h.DB.Model(&model.Listing{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		Update("is_active", false)
	if result.Error != nil {
		log.Error("failed to delete listing", zap.Uint("listing_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete listing"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	prometheus.RecordListingOperation("delete")
	log.Info("listing deactivated", zap.Uint("listing_id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"message": "listing deleted"})
}

// Mine returns the caller's own listings, inactive ones included.
func (h *ListingHandler) Mine(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	page, limit := pageParams(c, search.DefaultPublicLimit)

	tx := h.DB.Model(&model.Listing{}).Where("user_id = ?", userID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Error("failed to count own listings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load listings"})
	}

	listings := []model.Listing{}
	err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		log.Error("failed to load own listings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load listings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"listings":   listings,
		"pagination": search.Paginate(page, limit, total),
	})
}
