package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/internal/search"
)

// queryParams flattens the request's query string into search params,
// keeping the first value of each key.
func queryParams(c echo.Context) search.Params {
	params := search.Params{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// parseID parses a numeric path id. A malformed id is a validation failure,
// distinct from not-found.
func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(n), nil
}

// pageParams reads pagination from the query string with a default limit.
func pageParams(c echo.Context, defaultLimit int) (page, limit int) {
	page = 1
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 1 {
		page = n
	}
	limit = defaultLimit
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		limit = n
	}
	return page, limit
}

// validationFailure reports a validation error with field detail when
// available.
func validationFailure(c echo.Context, err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
