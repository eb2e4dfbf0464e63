package service

import (
	"sort"
	"time"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

// roundPercent returns round(100*part/whole) with halves rounded up, or 0 when whole is 0.
func roundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// roundMean returns the half-up rounded mean of values, or 0 for an empty slice.
func roundMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	n := len(values)
	return (2*sum + n) / (2 * n)
}

// MemberPercentages computes each member's attendance percentage in member order.
// Present and replaced records both count as attended.
func MemberPercentages(members []models.Member, records []models.AttendanceRecord) []dto.Performer {
	type tally struct{ attended, total int }
	counts := make(map[string]*tally, len(members))
	for _, record := range records {
		t, ok := counts[record.MemberID]
		if !ok {
			t = &tally{}
			counts[record.MemberID] = t
		}
		t.total++
		if record.Status.Attended() {
			t.attended++
		}
	}

	performers := make([]dto.Performer, 0, len(members))
	for _, member := range members {
		percentage := 0
		if t, ok := counts[member.ID]; ok {
			percentage = roundPercent(t.attended, t.total)
		}
		performers = append(performers, dto.Performer{MemberID: member.ID, Name: member.Name, Percentage: percentage})
	}
	return performers
}

// AverageAttendance is the rounded mean of the per-member percentages.
func AverageAttendance(performers []dto.Performer) int {
	values := make([]int, len(performers))
	for i, p := range performers {
		values[i] = p.Percentage
	}
	return roundMean(values)
}

// RankPerformers orders members by percentage descending, keeping input order on ties.
// top holds the first size entries; low holds the last size entries, lowest first.
// With fewer than 2*size members the two lists share entries.
func RankPerformers(performers []dto.Performer, size int) (top, low []dto.Performer) {
	ranked := make([]dto.Performer, len(performers))
	copy(ranked, performers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Percentage > ranked[j].Percentage
	})

	if size > len(ranked) {
		size = len(ranked)
	}
	top = append([]dto.Performer{}, ranked[:size]...)
	low = make([]dto.Performer, 0, size)
	for i := len(ranked) - 1; i >= len(ranked)-size; i-- {
		low = append(low, ranked[i])
	}
	return top, low
}

// RecentAttendance is the attended share of records dated within window of the start of now's day.
func RecentAttendance(records []models.AttendanceRecord, now time.Time, window time.Duration) int {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := calendarDate(startOfDay.Add(-window))

	attended, total := 0, 0
	for _, record := range records {
		if calendarDate(record.Date) < cutoff {
			continue
		}
		total++
		if record.Status.Attended() {
			attended++
		}
	}
	return roundPercent(attended, total)
}

// SummariseMember counts one member's records per status.
func SummariseMember(memberID string, records []models.AttendanceRecord) dto.MemberAttendanceSummary {
	summary := dto.MemberAttendanceSummary{MemberID: memberID}
	for _, record := range records {
		if record.MemberID != memberID {
			continue
		}
		summary.Total++
		switch record.Status {
		case models.AttendanceStatusPresent:
			summary.Present++
		case models.AttendanceStatusAbsent:
			summary.Absent++
		case models.AttendanceStatusReplaced:
			summary.Replaced++
		}
	}
	summary.Percentage = roundPercent(summary.Present+summary.Replaced, summary.Total)
	return summary
}

// TallyPoll counts responses per option. Responses pointing outside the option list count
// towards the total but not towards any option.
func TallyPoll(poll models.Poll, responses []models.PollResponse) models.PollTally {
	options := []string(poll.Options)
	if options == nil {
		options = []string{}
	}
	tally := models.PollTally{
		PollID:         poll.ID,
		Question:       poll.Question,
		Options:        options,
		OptionCounts:   make([]int, len(options)),
		Percentages:    make([]int, len(options)),
		TotalResponses: len(responses),
	}
	for _, response := range responses {
		if response.SelectedOption >= 0 && response.SelectedOption < len(options) {
			tally.OptionCounts[response.SelectedOption]++
		}
	}
	for i, count := range tally.OptionCounts {
		tally.Percentages[i] = roundPercent(count, tally.TotalResponses)
	}
	return tally
}
