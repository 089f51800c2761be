package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/middleware"
	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/internal/search"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
)

// FavoriteHandler lets users save and unsave listings.
type FavoriteHandler struct {
	DB *gorm.DB
}

// Add saves a listing for the caller. Saving the same listing twice is a
// no-op that returns the existing favorite.
func (h *FavoriteHandler) Add(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ListingID uint `json:"listing_id"`
	}
	if err := c.Bind(&req); err != nil || req.ListingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id is required"})
	}

	var count int64
	h.DB.Model(&model.Listing{}).Where("id = ? AND is_active = ?", req.ListingID, true).Count(&count)
	if count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	var existing model.Favorite
	result := h.DB.Where("user_id = ? AND listing_id = ?", userID, req.ListingID).First(&existing)
	if result.Error == nil {
		return c.JSON(http.StatusOK, existing)
	}

	favorite := model.Favorite{UserID: userID, ListingID: req.ListingID}
	if result := h.DB.Create(&favorite); result.Error != nil {
		log.Error("failed to save favorite",
			zap.Uint("listing_id", req.ListingID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save favorite"})
	}

	log.Info("favorite saved", zap.Uint("user_id", userID), zap.Uint("listing_id", req.ListingID))
	return c.JSON(http.StatusCreated, favorite)
}

// Remove unsaves a listing.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	listingID, err := parseID(c.Param("listing_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	result := h.DB.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&model.Favorite{})
	if result.Error != nil {
		logger.FromEcho(c).Error("failed to remove favorite", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove favorite"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "favorite removed"})
}

// List returns the caller's saved listings, newest save first.
func (h *FavoriteHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	page, limit := pageParams(c, search.DefaultPublicLimit)

	tx := h.DB.Model(&model.Favorite{}).Where("user_id = ?", userID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Error("failed to count favorites", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load favorites"})
	}

	favorites := []model.Favorite{}
	err := tx.Preload("Listing").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		log.Error("failed to load favorites", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load favorites"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"favorites":  favorites,
		"pagination": search.Paginate(page, limit, total),
	})
}
