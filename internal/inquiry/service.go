package inquiry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/internal/search"
)

const (
	// DedupWindow is the sliding lookback for rejecting repeat inquiries
	// from the same email against the same listing.
	DedupWindow = 24 * time.Hour

	// Inquiries older than this with no response are due for a follow-up.
	followUpAge = 3 * 24 * time.Hour

	// An inquiry stops being re-alerted after this many follow-ups.
	maxFollowUps = 3

	maxMessageLen = 1000
)

var (
	// ErrNotFound covers both a missing inquiry and one owned by someone
	// else. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("inquiry not found")

	// ErrDuplicate means the same email inquired about the same listing
	// inside the dedup window.
	ErrDuplicate = errors.New("duplicate inquiry")

	// ErrListingNotFound means the referenced listing is missing or inactive.
	ErrListingNotFound = errors.New("listing not found")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service owns the inquiry creation, dedup and status-transition policy,
// independent of the HTTP layer.
type Service struct {
	db  *gorm.DB
	log *zap.Logger

	// now is swappable so tests can move the clock across the dedup and
	// follow-up windows.
	now func() time.Time
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log, now: time.Now}
}

// CreateInput is an inquiry submission. ListingID nil marks a general
// inquiry with no listing association.
type CreateInput struct {
	ListingID      *uint
	Name           string
	Email          string
	Phone          string
	Message        string
	InquirerUserID *uint
}

// Create validates and persists an inquiry. Listing-bound inquiries check
// that the listing exists and is active, snapshot its current owner, and
// are rejected if the same email already inquired within the last 24 hours.
func (s *Service) Create(input CreateInput) (*model.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, &model.ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, &model.ValidationError{Field: "email", Message: "invalid email address"}
	}
	phone := digitsOnly(input.Phone)
	if len(phone) != 10 {
		return nil, &model.ValidationError{Field: "phone", Message: "phone must be 10 digits"}
	}
	if utf8.RuneCountInString(input.Message) > maxMessageLen {
		return nil, &model.ValidationError{Field: "message", Message: "message must be at most 1000 characters"}
	}

	inq := model.Inquiry{
		Name:           name,
		Email:          email,
		Phone:          phone,
		Message:        strings.TrimSpace(input.Message),
		Status:         model.InquiryStatusNew,
		InquirerUserID: input.InquirerUserID,
		CreatedAt:      s.now(),
	}

	if input.ListingID != nil {
		var listing model.Listing
		err := s.db.Where("id = ? AND is_active = ?", *input.ListingID, true).First(&listing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load listing: %w", err)
		}

		// Sliding window evaluated at insert time, not a per-day bucket.
		// Two concurrent submissions can race past this check; the counter
		// below is equally relaxed, so neither is wrapped in a transaction.
		since := s.now().Add(-DedupWindow)
		var dup int64
		err = s.db.Model(&model.Inquiry{}).
			Where("email = ? AND listing_id = ? AND created_at > ?", email, listing.ID, since).
			Count(&dup).Error
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if dup > 0 {
			return nil, ErrDuplicate
		}

		inq.ListingID = &listing.ID
		owner := listing.UserID
		inq.ListingOwnerID = &owner
	}

	if err := s.db.Create(&inq).Error; err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	if inq.ListingID != nil {
		// Best effort: the inquiry is already persisted, a failed counter
		// bump only skews the denormalized count.
		err := s.db.Model(&model.Listing{}).
			Where("id = ?", *inq.ListingID).
			UpdateColumn("inquiries", gorm.Expr("inquiries + 1")).Error
		if err != nil {
			s.log.Warn("failed to bump listing inquiry counter",
				zap.Uint("listing_id", *inq.ListingID),
				zap.Error(err))
		}
	}

	return &inq, nil
}

// UpdateStatus transitions an inquiry. Non-admin callers must own the
// listing the inquiry was made against; failures to match are reported
// identically to a missing inquiry. Transitioning to contacted with a
// response stamps responded_at only the first time.
func (s *Service) UpdateStatus(id uint, status model.InquiryStatus, actingUserID uint, isAdmin bool, responseText string) (*model.Inquiry, error) {
	if !status.Valid() {
		return nil, &model.ValidationError{Field: "status", Message: "unknown inquiry status"}
	}

	var inq model.Inquiry
	tx := s.db.Where("id = ?", id)
	if !isAdmin {
		tx = tx.Where("listing_owner_id = ?", actingUserID)
	}
	if err := tx.First(&inq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load inquiry: %w", err)
	}

	if inq.Status == model.InquiryStatusClosed && status != model.InquiryStatusClosed {
		return nil, &model.ValidationError{Field: "status", Message: "inquiry is closed"}
	}
	if status == model.InquiryStatusNew && inq.Status != model.InquiryStatusNew {
		return nil, &model.ValidationError{Field: "status", Message: "inquiry cannot return to new"}
	}

	updates := map[string]interface{}{"status": status}
	responseText = strings.TrimSpace(responseText)
	if status == model.InquiryStatusContacted && responseText != "" {
		updates["response"] = responseText
		if inq.RespondedAt == nil {
			ts := s.now()
			updates["responded_at"] = ts
			inq.RespondedAt = &ts
		}
		inq.Response = responseText
	}

	if err := s.db.Model(&inq).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	inq.Status = status
	return &inq, nil
}

// ListForOwner returns the inquiries made against a user's listings,
// newest first, optionally filtered by status.
func (s *Service) ListForOwner(ownerID uint, status string, page, limit int) ([]model.Inquiry, search.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = search.DefaultPublicLimit
	}

	tx := s.db.Model(&model.Inquiry{}).Where("listing_owner_id = ?", ownerID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, search.Pagination{}, fmt.Errorf("count inquiries: %w", err)
	}

	inquiries := []model.Inquiry{}
	err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, search.Pagination{}, fmt.Errorf("find inquiries: %w", err)
	}

	return inquiries, search.Paginate(page, limit, total), nil
}

// FindNeedingFollowUp returns an owner's stale leads: unanswered, still in
// new or contacted, older than three days, and not yet re-alerted three
// times.
func (s *Service) FindNeedingFollowUp(ownerID uint) ([]model.Inquiry, error) {
	cutoff := s.now().Add(-followUpAge)

	inquiries := []model.Inquiry{}
	err := s.db.
		Where("listing_owner_id = ?", ownerID).
		Where("status IN ?", []model.InquiryStatus{model.InquiryStatusNew, model.InquiryStatusContacted}).
		Where("responded_at IS NULL").
		Where("created_at < ?", cutoff).
		Where("follow_up_count < ?", maxFollowUps).
		Order("created_at ASC").
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("find follow-ups: %w", err)
	}
	return inquiries, nil
}

// RecordFollowUp marks one more follow-up against an owned inquiry.
func (s *Service) RecordFollowUp(id, ownerID uint) (*model.Inquiry, error) {
	var inq model.Inquiry
	err := s.db.Where("id = ? AND listing_owner_id = ?", id, ownerID).First(&inq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load inquiry: %w", err)
	}

	if inq.FollowUpCount >= maxFollowUps {
		return nil, &model.ValidationError{Field: "follow_up_count", Message: "follow-up limit reached"}
	}

	err = s.db.Model(&inq).UpdateColumn("follow_up_count", gorm.Expr("follow_up_count + 1")).Error
	if err != nil {
		return nil, fmt.Errorf("record follow-up: %w", err)
	}
	inq.FollowUpCount++
	return &inq, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
