package search

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Params holds the raw query-string parameters of a search request. Missing
// keys mean no constraint on that dimension.
type Params map[string]string

const (
	DefaultPublicLimit = 10
	DefaultAdminLimit  = 20
)

// Query is the result of translating filter params: a predicate, an order
// clause and a pagination window.
type Query struct {
	conds []condition
	order string

	Page  int
	Limit int
	Skip  int
}

type condition struct {
	expr string
	args []interface{}
}

// Fields matched case-insensitively as substrings.
var infixFields = map[string]string{
	"city":        "city",
	"state":       "state",
	"locality":    "locality",
	"title":       "title",
	"description": "description",
	"address":     "address",
}

// Fields matched exactly. Values are passed through uninterpreted; enum
// validation happens at write time, not here.
var exactFields = map[string]string{
	"propertyType": "property_type",
	"listingType":  "listing_type",
	"furnishing":   "furnishing",
	"userType":     "user_type",
}

// Boolean flag filters honored only by the admin variant.
var adminFlagFields = map[string]string{
	"isActive":   "is_active",
	"isVerified": "is_verified",
	"isFeatured": "is_featured",
	"isPremium":  "is_premium",
}

var sortSpecs = map[string]string{
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"price-low":  "price ASC",
	"price-high": "price DESC",
	"area-low":   "area ASC",
	"area-high":  "area DESC",
	"popular":    "views DESC, inquiries DESC",
}

// Columns allowed in the legacy sortBy parameter.
var legacySortFields = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"area":      "area",
	"views":     "views",
	"title":     "title",
}

// Build translates public search params into a query. The public variant
// always constrains results to active listings.
func Build(params Params) *Query {
	q := &Query{}
	q.where("is_active = ?", true)
	q.applyFilters(params)
	q.applySort(params)
	q.applyPagination(params, DefaultPublicLimit)
	return q
}

// BuildAdmin translates admin listing params into a query. No implicit
// is_active constraint; status and flag filters apply only when the
// parameter is a non-empty, convertible value.
func BuildAdmin(params Params) *Query {
	q := &Query{}
	if v := params["status"]; v != "" {
		q.where("status = ?", v)
	}
	for param, column := range adminFlagFields {
		v := params[param]
		if v == "" {
			continue
		}
		if b, err := strconv.ParseBool(v); err == nil {
			q.where(column+" = ?", b)
		}
	}
	q.applyFilters(params)
	q.applySort(params)
	q.applyPagination(params, DefaultAdminLimit)
	return q
}

func (q *Query) where(expr string, args ...interface{}) {
	q.conds = append(q.conds, condition{expr: expr, args: args})
}

func (q *Query) applyFilters(params Params) {
	for param, column := range infixFields {
		if v := strings.TrimSpace(params[param]); v != "" {
			q.where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(v)+"%")
		}
	}
	for param, column := range exactFields {
		if v := params[param]; v != "" {
			q.where(column+" = ?", v)
		}
	}

	q.numericRange("price", params["minPrice"], params["maxPrice"])
	q.numericRange("area", params["minArea"], params["maxArea"])

	q.threshold("bedrooms", params["bedrooms"])
	q.threshold("bathrooms", params["bathrooms"])
	q.threshold("parking", params["parking"])

	q.amenities(params["amenities"])
	q.freeText(params["search"])
}

// numericRange adds only the bounds that parse. Unparseable input is
// treated as no constraint: lenient filtering is the documented behavior,
// not an accident of a parser returning garbage.
func (q *Query) numericRange(column, min, max string) {
	if v, ok := parseFloat(min); ok {
		q.where(column+" >= ?", v)
	}
	if v, ok := parseFloat(max); ok {
		q.where(column+" <= ?", v)
	}
}

// threshold handles count filters that accept an exact value or an
// overflow sentinel: "4+" means four or more. Parking treats "3" itself
// as "3+" since that is the top bucket the filter UI offers.
func (q *Query) threshold(column, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	overflow := strings.HasSuffix(raw, "+")
	n, err := strconv.Atoi(strings.TrimSuffix(raw, "+"))
	if err != nil {
		return
	}
	if column == "parking" && n == 3 {
		overflow = true
	}
	if overflow {
		q.where(column+" >= ?", n)
	} else {
		q.where(column+" = ?", n)
	}
}

// amenities turns a comma-separated list into an any-of constraint against
// the listing's amenity set. The column stores a JSON array, so membership
// reduces to a quoted substring match.
func (q *Query) amenities(raw string) {
	var wanted []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			wanted = append(wanted, a)
		}
	}
	if len(wanted) == 0 {
		return
	}
	exprs := make([]string, len(wanted))
	args := make([]interface{}, len(wanted))
	for i, a := range wanted {
		exprs[i] = "amenities LIKE ?"
		args[i] = fmt.Sprintf("%%%q%%", a)
	}
	q.where("("+strings.Join(exprs, " OR ")+")", args...)
}

// freeText fans a search term out across the text fields, ORed internally
// and ANDed with every other filter.
func (q *Query) freeText(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	needle := "%" + strings.ToLower(term) + "%"
	q.where(
		"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(locality) LIKE ? OR LOWER(address) LIKE ? OR LOWER(city) LIKE ?)",
		needle, needle, needle, needle, needle,
	)
}

func (q *Query) applySort(params Params) {
	if spec, ok := sortSpecs[params["sort"]]; ok {
		q.order = spec
		return
	}
	// Legacy two-parameter form.
	if column, ok := legacySortFields[params["sortBy"]]; ok {
		dir := "DESC"
		if strings.EqualFold(params["sortOrder"], "asc") {
			dir = "ASC"
		}
		q.order = column + " " + dir
		return
	}
	q.order = "created_at DESC"
}

func (q *Query) applyPagination(params Params, defaultLimit int) {
	q.Page = 1
	if n, err := strconv.Atoi(params["page"]); err == nil && n > 1 {
		q.Page = n
	}
	q.Limit = defaultLimit
	if n, err := strconv.Atoi(params["limit"]); err == nil && n > 0 {
		q.Limit = n
	}
	q.Skip = (q.Page - 1) * q.Limit
}

// Scope applies the predicate to a gorm query, without ordering or
// pagination. Count and Find share it.
func (q *Query) Scope(tx *gorm.DB) *gorm.DB {
	for _, c := range q.conds {
		tx = tx.Where(c.expr, c.args...)
	}
	return tx
}

// Order returns the comparator clause.
func (q *Query) Order() string { return q.order }

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
