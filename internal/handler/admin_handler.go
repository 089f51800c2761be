package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/internal/search"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
	"github.com/radheshyamgupta01/TLF-sub001/prometheus"
)

// AdminHandler serves the moderation surface. All routes are behind the
// admin guard.
type AdminHandler struct {
	DB *gorm.DB
}

// Listings runs the admin listing search: no implicit is_active filter,
// explicit status and flag filters, larger default page size.
func (h *AdminHandler) Listings(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	listings, pagination, err := search.SearchAdmin(h.DB, queryParams(c))
	if err != nil {
		log.Error("admin listing search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search listings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"listings":   listings,
		"pagination": pagination,
	})
}

// ModerateListing applies an admin moderation patch: lifecycle status and
// the verified/featured/premium/active flags.
func (h *AdminHandler) ModerateListing(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	var patch model.ModerationPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("failed to parse moderation patch", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var listing model.Listing
	if result := h.DB.First(&listing, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	if err := patch.Apply(&listing); err != nil {
		return validationFailure(c, err)
	}

	if result := h.DB.Save(&listing); result.Error != nil {
		log.Error("failed to moderate listing", zap.Uint("listing_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update listing"})
	}

	prometheus.RecordListingOperation("moderate")
	log.Info("listing moderated",
		zap.Uint("listing_id", id),
		zap.String("status", string(listing.Status)))
	return c.JSON(http.StatusOK, listing)
}

// Users lists accounts, optionally filtered by role or active state.
func (h *AdminHandler) Users(c echo.Context) error {
	log := logger.FromEcho(c)

	page, limit := pageParams(c, search.DefaultAdminLimit)

	tx := h.DB.Model(&model.User{})
	if role := c.QueryParam("role"); role != "" {
		tx = tx.Where("role = ?", role)
	}
	if active := c.QueryParam("isActive"); active != "" {
		tx = tx.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Error("failed to count users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load users"})
	}

	users := []model.User{}
	err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		log.Error("failed to load users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load users"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"pagination": search.Paginate(page, limit, total),
	})
}

// SetUserActive activates or deactivates an account.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}

	result := h.DB.Model(&model.User{}).Where("id = ?", id).Update("is_active", *req.IsActive)
	if result.Error != nil {
		log.Error("failed to update user", zap.Uint("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	log.Info("user active flag set", zap.Uint("user_id", id), zap.Bool("is_active", *req.IsActive))
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated"})
}

// Inquiries lists all inquiries across the marketplace, optionally
// filtered by status.
func (h *AdminHandler) Inquiries(c echo.Context) error {
	log := logger.FromEcho(c)

	page, limit := pageParams(c, search.DefaultAdminLimit)

	tx := h.DB.Model(&model.Inquiry{})
	if status := c.QueryParam("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Error("failed to count inquiries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load inquiries"})
	}

	inquiries := []model.Inquiry{}
	err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		log.Error("failed to load inquiries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load inquiries"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"inquiries":  inquiries,
		"pagination": search.Paginate(page, limit, total),
	})
}

// Stats aggregates counts for the admin dashboard.
func (h *AdminHandler) Stats(c echo.Context) error {
	log := logger.FromEcho(c)

	byStatus, err := search.CountByStatus(h.DB)
	if err != nil {
		log.Error("dashboard aggregation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate"})
	}
	byType, err := search.CountByPropertyType(h.DB)
	if err != nil {
		log.Error("dashboard aggregation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate"})
	}

	var userCount, inquiryCount int64
	h.DB.Model(&model.User{}).Count(&userCount)
	h.DB.Model(&model.Inquiry{}).Count(&inquiryCount)

	return c.JSON(http.StatusOK, echo.Map{
		"listings_by_status": byStatus,
		"listings_by_type":   byType,
		"total_users":        userCount,
		"total_inquiries":    inquiryCount,
	})
}
