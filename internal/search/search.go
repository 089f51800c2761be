package search

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
)

// Pagination describes the window of a result set.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
	HasMore     bool  `json:"has_more"`
}

// Paginate computes the pagination envelope for a total count.
func Paginate(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasMore:     page < totalPages,
	}
}

// Search runs the public listing search.
func Search(db *gorm.DB, params Params) ([]model.Listing, Pagination, error) {
	return run(db, Build(params))
}

// SearchAdmin runs the admin listing search, which sees inactive and
// unmoderated listings.
func SearchAdmin(db *gorm.DB, params Params) ([]model.Listing, Pagination, error) {
	return run(db, BuildAdmin(params))
}

func run(db *gorm.DB, q *Query) ([]model.Listing, Pagination, error) {
	var total int64
	if err := q.Scope(db.Model(&model.Listing{})).Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count listings: %w", err)
	}

	listings := []model.Listing{}
	err := q.Scope(db.Model(&model.Listing{})).
		Order(q.Order()).
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&listings).Error
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("find listings: %w", err)
	}

	return listings, Paginate(q.Page, q.Limit, total), nil
}

// GroupCount is one bucket of a group-by aggregation.
type GroupCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// CountByPropertyType aggregates active listings per property type.
func CountByPropertyType(db *gorm.DB) ([]GroupCount, error) {
	return groupCount(db.Where("is_active = ?", true), "property_type")
}

// CountByCity aggregates active listings per city.
func CountByCity(db *gorm.DB) ([]GroupCount, error) {
	return groupCount(db.Where("is_active = ?", true), "city")
}

// CountByStatus aggregates all listings per moderation status, inactive
// ones included, for the admin dashboard.
func CountByStatus(db *gorm.DB) ([]GroupCount, error) {
	return groupCount(db, "status")
}

func groupCount(db *gorm.DB, column string) ([]GroupCount, error) {
	rows := []GroupCount{}
	err := db.Model(&model.Listing{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate listings by %s: %w", column, err)
	}
	return rows, nil
}
