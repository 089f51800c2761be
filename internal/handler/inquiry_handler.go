package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/radheshyamgupta01/TLF-sub001/internal/inquiry"
	"github.com/radheshyamgupta01/TLF-sub001/internal/middleware"
	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
	"github.com/radheshyamgupta01/TLF-sub001/prometheus"
)

// InquiryHandler exposes the inquiry lifecycle over HTTP.
type InquiryHandler struct {
	Service *inquiry.Service
}

// Create handles an inquiry submission. Works for anonymous visitors;
// authenticated callers get linked to the inquiry.
func (h *InquiryHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		ListingID *uint  `json:"listing_id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Message   string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("failed to parse inquiry request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	input := inquiry.CreateInput{
		ListingID: req.ListingID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}
	if userID, ok := middleware.UserID(c); ok {
		input.InquirerUserID = &userID
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	inq, err := h.Service.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, inquiry.ErrDuplicate):
			prometheus.DuplicateInquiryCounter.Inc()
			log.Info("duplicate inquiry rejected", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{"error": "you have already inquired about this listing recently"})
		case errors.Is(err, inquiry.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		default:
			var ve *model.ValidationError
			if errors.As(err, &ve) {
				return validationFailure(c, err)
			}
			log.Error("failed to create inquiry", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create inquiry"})
		}
	}

	prometheus.RecordInquiryOperation("create")
	log.Info("inquiry created",
		zap.Uint("inquiry_id", inq.ID),
		zap.Bool("general", inq.ListingID == nil))
	// Notification dispatch to the listing owner would hook in here.
	return c.JSON(http.StatusCreated, inq)
}

// List returns the inquiries made against the caller's listings.
func (h *InquiryHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	page, limit := pageParams(c, 10)
	inquiries, pagination, err := h.Service.ListForOwner(userID, c.QueryParam("status"), page, limit)
	if err != nil {
		log.Error("failed to list inquiries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load inquiries"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"inquiries":  inquiries,
		"pagination": pagination,
	})
}

// UpdateStatus transitions an inquiry. Admins may act on any inquiry,
// everyone else only on inquiries against their own listings.
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inquiry id"})
	}

	var req struct {
		Status   model.InquiryStatus `json:"status"`
		Response string              `json:"response"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("failed to parse status update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	inq, err := h.Service.UpdateStatus(id, req.Status, userID, middleware.IsAdmin(c), req.Response)
	if err != nil {
		if errors.Is(err, inquiry.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return validationFailure(c, err)
		}
		log.Error("failed to update inquiry status", zap.Uint("inquiry_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update inquiry"})
	}

	prometheus.RecordInquiryOperation("status_update")
	log.Info("inquiry status updated",
		zap.Uint("inquiry_id", id),
		zap.String("status", string(inq.Status)))
	return c.JSON(http.StatusOK, inq)
}

// FollowUps returns the caller's stale leads due for a reminder.
func (h *InquiryHandler) FollowUps(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	inquiries, err := h.Service.FindNeedingFollowUp(userID)
	if err != nil {
		log.Error("failed to load follow-ups", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load follow-ups"})
	}

	return c.JSON(http.StatusOK, echo.Map{"inquiries": inquiries})
}

// RecordFollowUp marks one more follow-up against an owned inquiry.
func (h *InquiryHandler) RecordFollowUp(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inquiry id"})
	}

	inq, err := h.Service.RecordFollowUp(id, userID)
	if err != nil {
		if errors.Is(err, inquiry.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return validationFailure(c, err)
		}
		log.Error("failed to record follow-up", zap.Uint("inquiry_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record follow-up"})
	}

	prometheus.RecordInquiryOperation("follow_up")
	return c.JSON(http.StatusOK, inq)
}
