package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fretbase/guitar-registry/pkg/search"
)

// queryInt parses an optional integer query parameter. Returns nil when the
// parameter is absent or blank.
func queryInt(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

// queryBool parses an optional boolean query parameter accepting
// true/1/yes and false/0/no. Returns nil when absent.
func queryBool(values url.Values, name string) (*bool, error) {
	raw := strings.ToLower(strings.TrimSpace(values.Get(name)))
	if raw == "" {
		return nil, nil
	}
	switch raw {
	case "true", "1", "yes":
		v := true
		return &v, nil
	case "false", "0", "no":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("%s must be true or false", name)
	}
}

// pageParams parses and strictly validates page and page_size. Unlike the
// resolvers, which clamp, the HTTP surface rejects out-of-range values.
func pageParams(values url.Values, defaultPageSize, maxPageSize int) (page, pageSize int, err error) {
	pagePtr, err := queryInt(values, "page")
	if err != nil {
		return 0, 0, err
	}
	page = 1
	if pagePtr != nil {
		page = *pagePtr
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("page must be >= 1")
	}

	sizePtr, err := queryInt(values, "page_size")
	if err != nil {
		return 0, 0, err
	}
	pageSize = defaultPageSize
	if sizePtr != nil {
		pageSize = *sizePtr
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return 0, 0, fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
	}

	return page, pageSize, nil
}

// yearParam parses an optional year-valued parameter and enforces the
// supported range.
func yearParam(values url.Values, name string) (*int, error) {
	year, err := queryInt(values, name)
	if err != nil {
		return nil, err
	}
	if year != nil && (*year < search.MinYear || *year > search.MaxYear) {
		return nil, fmt.Errorf("%s must be between %d and %d", name, search.MinYear, search.MaxYear)
	}
	return year, nil
}
