package inquiry

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/database"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	svc := NewService(db, zap.NewNop())
	svc.now = func() time.Time { return testTime }
	return svc, db
}

func seedListing(t *testing.T, db *gorm.DB, ownerID uint, active bool) model.Listing {
	t.Helper()
	l := model.Listing{
		Title:        "3 BHK Villa",
		PropertyType: model.PropertyVilla,
		ListingType:  model.ListingSale,
		City:         "Bengaluru",
		Price:        9500000,
		UserID:       ownerID,
		UserType:     model.RoleSeller,
		IsActive:     active,
		Status:       model.ListingStatusApproved,
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func validInput(listingID *uint) CreateInput {
	return CreateInput{
		ListingID: listingID,
		Name:      "Priya Sharma",
		Email:     "Priya.Sharma@Example.com",
		Phone:     "(987) 654-3210",
		Message:   "Is this still available?",
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string
	}{
		{"short name", func(in *CreateInput) { in.Name = " A " }, "name"},
		{"bad email", func(in *CreateInput) { in.Email = "not-an-email" }, "email"},
		{"short phone", func(in *CreateInput) { in.Phone = "12345" }, "phone"},
		{"long phone", func(in *CreateInput) { in.Phone = "12345678901" }, "phone"},
		{"long message", func(in *CreateInput) { in.Message = strings.Repeat("x", 1001) }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(nil)
			tt.mutate(&in)
			_, err := svc.Create(in)
			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreateGeneralInquiry(t *testing.T) {
	svc, _ := newTestService(t)

	inq, err := svc.Create(validInput(nil))
	require.NoError(t, err)
	assert.Nil(t, inq.ListingID)
	assert.Nil(t, inq.ListingOwnerID)
	assert.Equal(t, model.InquiryStatusNew, inq.Status)
	assert.Equal(t, "priya.sharma@example.com", inq.Email)
	assert.Equal(t, "9876543210", inq.Phone)

	// General inquiries bypass the dedup window entirely.
	_, err = svc.Create(validInput(nil))
	require.NoError(t, err)
}

func TestCreateSnapshotsOwnerAndBumpsCounter(t *testing.T) {
	svc, db := newTestService(t)
	listing := seedListing(t, db, 42, true)

	inq, err := svc.Create(validInput(&listing.ID))
	require.NoError(t, err)
	require.NotNil(t, inq.ListingOwnerID)
	assert.Equal(t, uint(42), *inq.ListingOwnerID)

	var reloaded model.Listing
	require.NoError(t, db.First(&reloaded, listing.ID).Error)
	assert.Equal(t, int64(1), reloaded.Inquiries)

	// Reassigning the listing does not re-sync the snapshot.
	require.NoError(t, db.Model(&reloaded).Update("user_id", 77).Error)
	var stored model.Inquiry
	require.NoError(t, db.First(&stored, inq.ID).Error)
	assert.Equal(t, uint(42), *stored.ListingOwnerID)
}

func TestCreateListingMissingOrInactive(t *testing.T) {
	svc, db := newTestService(t)

	missing := uint(999)
	_, err := svc.Create(validInput(&missing))
	assert.ErrorIs(t, err, ErrListingNotFound)

	inactive := seedListing(t, db, 1, false)
	_, err = svc.Create(validInput(&inactive.ID))
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestDedupWindow(t *testing.T) {
	svc, db := newTestService(t)
	listing := seedListing(t, db, 1, true)

	_, err := svc.Create(validInput(&listing.ID))
	require.NoError(t, err)

	// Same email, same listing, one hour later: rejected.
	svc.now = func() time.Time { return testTime.Add(time.Hour) }
	_, err = svc.Create(validInput(&listing.ID))
	assert.ErrorIs(t, err, ErrDuplicate)

	// Email normalization feeds the dedup key.
	in := validInput(&listing.ID)
	in.Email = "  PRIYA.SHARMA@example.COM  "
	_, err = svc.Create(in)
	assert.ErrorIs(t, err, ErrDuplicate)

	// A different email is not a duplicate.
	in = validInput(&listing.ID)
	in.Email = "other@example.com"
	_, err = svc.Create(in)
	require.NoError(t, err)

	// Past the 24-hour window the same email may inquire again.
	svc.now = func() time.Time { return testTime.Add(25 * time.Hour) }
	_, err = svc.Create(validInput(&listing.ID))
	require.NoError(t, err)
}

func TestUpdateStatusOwnership(t *testing.T) {
	svc, db := newTestService(t)
	listing := seedListing(t, db, 42, true)

	inq, err := svc.Create(validInput(&listing.ID))
	require.NoError(t, err)

	// A non-owner and a nonexistent id look exactly the same.
	_, err = svc.UpdateStatus(inq.ID, model.InquiryStatusContacted, 7, false, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.UpdateStatus(9999, model.InquiryStatusContacted, 42, false, "")
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner may transition.
	updated, err := svc.UpdateStatus(inq.ID, model.InquiryStatusContacted, 42, false, "")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryStatusContacted, updated.Status)

	// An admin bypasses the ownership check.
	_, err = svc.UpdateStatus(inq.ID, model.InquiryStatusClosed, 7, true, "")
	require.NoError(t, err)
}

func TestRespondedAtStampedOnce(t *testing.T) {
	svc, db := newTestService(t)
	listing := seedListing(t, db, 42, true)

	inq, err := svc.Create(validInput(&listing.ID))
	require.NoError(t, err)

	first, err := svc.UpdateStatus(inq.ID, model.InquiryStatusContacted, 42, false, "We will call you today")
	require.NoError(t, err)
	require.NotNil(t, first.RespondedAt)
	firstStamp := *first.RespondedAt

	// A second contact with a new response keeps the original stamp.
	svc.now = func() time.Time { return testTime.Add(48 * time.Hour) }
	second, err := svc.UpdateStatus(inq.ID, model.InquiryStatusContacted, 42, false, "Following up again")
	require.NoError(t, err)
	require.NotNil(t, second.RespondedAt)
	assert.True(t, second.RespondedAt.Equal(firstStamp))
	assert.Equal(t, "Following up again", second.Response)

	var stored model.Inquiry
	require.NoError(t, db.First(&stored, inq.ID).Error)
	require.NotNil(t, stored.RespondedAt)
	assert.True(t, stored.RespondedAt.Equal(firstStamp))
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, db := newTestService(t)
	listing := seedListing(t, db, 42, true)

	inq, err := svc.Create(validInput(&listing.ID))
	require.NoError(t, err)

	var ve *model.ValidationError

	_, err = svc.UpdateStatus(inq.ID, "spam", 42, false, "")
	require.ErrorAs(t, err, &ve)

	_, err = svc.UpdateStatus(inq.ID, model.InquiryStatusContacted, 42, false, "")
	require.NoError(t, err)

	// No way back to new.
	_, err = svc.UpdateStatus(inq.ID, model.InquiryStatusNew, 42, false, "")
	require.ErrorAs(t, err, &ve)

	_, err = svc.UpdateStatus(inq.ID, model.InquiryStatusClosed, 42, false, "")
	require.NoError(t, err)

	// Closed is terminal.
	_, err = svc.UpdateStatus(inq.ID, model.InquiryStatusInterested, 42, false, "")
	require.ErrorAs(t, err, &ve)
}

func seedInquiry(t *testing.T, db *gorm.DB, mutate func(*model.Inquiry)) model.Inquiry {
	t.Helper()
	owner := uint(42)
	inq := model.Inquiry{
		ListingOwnerID: &owner,
		Name:           "Rahul",
		Email:          "rahul@example.com",
		Phone:          "9000000000",
		Status:         model.InquiryStatusNew,
		CreatedAt:      testTime.Add(-5 * 24 * time.Hour),
	}
	if mutate != nil {
		mutate(&inq)
	}
	require.NoError(t, db.Create(&inq).Error)
	return inq
}

func TestFindNeedingFollowUp(t *testing.T) {
	svc, db := newTestService(t)

	due := seedInquiry(t, db, nil)
	dueContacted := seedInquiry(t, db, func(i *model.Inquiry) {
		i.Status = model.InquiryStatusContacted
		i.CreatedAt = testTime.Add(-4 * 24 * time.Hour)
	})
	seedInquiry(t, db, func(i *model.Inquiry) { i.CreatedAt = testTime.Add(-24 * time.Hour) }) // too fresh
	seedInquiry(t, db, func(i *model.Inquiry) { i.RespondedAt = &testTime })                   // answered
	seedInquiry(t, db, func(i *model.Inquiry) { i.FollowUpCount = 3 })                         // exhausted
	seedInquiry(t, db, func(i *model.Inquiry) { i.Status = model.InquiryStatusInterested })
	seedInquiry(t, db, func(i *model.Inquiry) { i.Status = model.InquiryStatusNotInterested })
	seedInquiry(t, db, func(i *model.Inquiry) { i.Status = model.InquiryStatusClosed })
	seedInquiry(t, db, func(i *model.Inquiry) { other := uint(7); i.ListingOwnerID = &other })

	stale, err := svc.FindNeedingFollowUp(42)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, due.ID, stale[0].ID)
	assert.Equal(t, dueContacted.ID, stale[1].ID)
}

func TestRecordFollowUpBound(t *testing.T) {
	svc, db := newTestService(t)
	inq := seedInquiry(t, db, nil)

	for i := 1; i <= 3; i++ {
		updated, err := svc.RecordFollowUp(inq.ID, 42)
		require.NoError(t, err)
		assert.Equal(t, i, updated.FollowUpCount)
	}

	_, err := svc.RecordFollowUp(inq.ID, 42)
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)

	// And it drops out of the follow-up queue.
	stale, err := svc.FindNeedingFollowUp(42)
	require.NoError(t, err)
	assert.Len(t, stale, 0)

	// Someone else's inquiry is indistinguishable from a missing one.
	_, err = svc.RecordFollowUp(inq.ID, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForOwner(t *testing.T) {
	svc, db := newTestService(t)

	for i := 0; i < 3; i++ {
		seedInquiry(t, db, func(inq *model.Inquiry) {
			inq.CreatedAt = testTime.Add(time.Duration(-i) * time.Hour)
		})
	}
	seedInquiry(t, db, func(i *model.Inquiry) { i.Status = model.InquiryStatusClosed })
	seedInquiry(t, db, func(i *model.Inquiry) { other := uint(7); i.ListingOwnerID = &other })

	inquiries, pagination, err := svc.ListForOwner(42, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, inquiries, 4)
	assert.Equal(t, int64(4), pagination.Total)

	inquiries, _, err = svc.ListForOwner(42, "closed", 1, 10)
	require.NoError(t, err)
	assert.Len(t, inquiries, 1)

	inquiries, pagination, err = svc.ListForOwner(42, "", 2, 3)
	require.NoError(t, err)
	assert.Len(t, inquiries, 1)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.False(t, pagination.HasMore)
}
