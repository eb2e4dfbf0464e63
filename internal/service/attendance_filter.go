package service

import (
	"strings"
	"time"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

const (
	dateLayout = "2006-01-02"
	filterAll  = "all"
)

// FilterAttendance keeps the joined records matching every active predicate, in input order.
// Blank or "all" predicates are inactive. Date bounds compare calendar dates inclusively and a
// bound that cannot be parsed is ignored.
func FilterAttendance(items []models.AttendanceWithRelations, filter models.AttendanceFilter) []models.AttendanceWithRelations {
	from, hasFrom := parseDateBound(filter.DateFrom)
	to, hasTo := parseDateBound(filter.DateTo)
	status := activeValue(filter.StatusFilter)
	story := activeValue(filter.StoryFilter)
	member := activeValue(filter.MemberFilter)
	event := activeValue(filter.EventFilter)

	result := make([]models.AttendanceWithRelations, 0, len(items))
	for _, item := range items {
		day := calendarDate(item.Date)
		if hasFrom && day < from {
			continue
		}
		if hasTo && day > to {
			continue
		}
		if status != "" && string(item.Status) != status {
			continue
		}
		if story != "" && (item.StoryID == nil || *item.StoryID != story) {
			continue
		}
		if member != "" && item.MemberID != member {
			continue
		}
		if event != "" && (item.EventType == nil || *item.EventType != event) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func activeValue(raw string) string {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(value, filterAll) {
		return ""
	}
	return value
}

// parseDateBound accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar date key.
func parseDateBound(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.Format(dateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(dateLayout), true
	}
	return "", false
}

func calendarDate(t time.Time) string {
	return t.Format(dateLayout)
}
