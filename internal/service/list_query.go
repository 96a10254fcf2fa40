package service

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"staffdesk/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	defaultSortColumn = "created_at"
	dateLayout        = "2006-01-02"
)

var sortFieldPattern = regexp.MustCompile(`^[a-zA-Z_]+$`)

// sortColumns maps the API's sort field names onto table columns. Anything
// outside this map falls back to the default sort, so no client-supplied
// string ever reaches the ORDER BY clause directly.
var sortColumns = map[string]string{
	"name":             "name",
	"email":            "email",
	"department":       "department",
	"role":             "role",
	"status":           "status",
	"joiningDate":      "joining_date",
	"performanceScore": "performance_score",
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
}

// BuildEmployeeListQuery sanitizes untrusted list parameters into a bounded
// query descriptor. It never fails: every value that does not pass its
// shape, type, or range check is replaced by a safe default, so the list
// endpoint cannot be broken by bad query syntax.
func BuildEmployeeListQuery(params url.Values) repository.EmployeeListQuery {
	q := repository.EmployeeListQuery{
		Search:       strings.TrimSpace(params.Get("search")),
		Department:   params.Get("department"),
		Status:       params.Get("status"),
		ShowArchived: params.Get("showArchived") == "true",
		Page:         parseIntDefault(params.Get("page"), defaultPage),
		Limit:        parseIntDefault(params.Get("limit"), defaultLimit),
	}

	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	if from, err := time.Parse(dateLayout, params.Get("dateFrom")); err == nil {
		q.DateFrom = &from
	}
	if to, err := time.Parse(dateLayout, params.Get("dateTo")); err == nil {
		q.DateTo = &to
	}

	q.SortColumn, q.SortDesc = resolveSort(params.Get("sortField"), params.Get("sortOrder"))
	return q
}

// resolveSort maps a sort field onto a whitelisted column. Fields that fail
// the identifier pattern or the column map fall back to creation time
// descending; otherwise direction is ascending unless explicitly "desc".
func resolveSort(field, order string) (column string, desc bool) {
	if !sortFieldPattern.MatchString(field) {
		return defaultSortColumn, true
	}
	column, ok := sortColumns[field]
	if !ok {
		return defaultSortColumn, true
	}
	return column, order == "desc"
}

func parseIntDefault(value string, def int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
