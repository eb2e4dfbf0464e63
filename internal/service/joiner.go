package service

import "github.com/Dhruvina99/sevarthi-api/internal/models"

// JoinAttendance resolves member, story, role and replaced-member references for each record.
// Lookups go through per-call hash indexes; a dangling id leaves the relation nil.
func JoinAttendance(records []models.AttendanceRecord, members []models.Member, stories []models.Story, roles []models.Role) []models.AttendanceWithRelations {
	memberIndex := indexMembers(members)
	storyIndex := make(map[string]*models.Story, len(stories))
	for i := range stories {
		storyIndex[stories[i].ID] = &stories[i]
	}
	roleIndex := make(map[string]*models.Role, len(roles))
	for i := range roles {
		roleIndex[roles[i].ID] = &roles[i]
	}

	joined := make([]models.AttendanceWithRelations, 0, len(records))
	for _, record := range records {
		item := models.AttendanceWithRelations{AttendanceRecord: record}
		item.Member = memberIndex[record.MemberID]
		if record.StoryID != nil {
			item.Story = storyIndex[*record.StoryID]
		}
		if record.RoleID != nil {
			item.Role = roleIndex[*record.RoleID]
		}
		if record.ReplacedMemberID != nil {
			item.ReplacedMember = memberIndex[*record.ReplacedMemberID]
		}
		joined = append(joined, item)
	}
	return joined
}

// JoinPollResponses attaches the responding member to each response.
func JoinPollResponses(responses []models.PollResponse, members []models.Member) []models.PollResponseWithMember {
	memberIndex := indexMembers(members)
	joined := make([]models.PollResponseWithMember, 0, len(responses))
	for _, response := range responses {
		joined = append(joined, models.PollResponseWithMember{
			PollResponse: response,
			Member:       memberIndex[response.MemberID],
		})
	}
	return joined
}

// JoinMemberReports attaches the submitting member to each report.
func JoinMemberReports(reports []models.MemberReport, members []models.Member) []models.MemberReportWithMember {
	memberIndex := indexMembers(members)
	joined := make([]models.MemberReportWithMember, 0, len(reports))
	for _, report := range reports {
		joined = append(joined, models.MemberReportWithMember{
			MemberReport: report,
			Member:       memberIndex[report.MemberID],
		})
	}
	return joined
}

func indexMembers(members []models.Member) map[string]*models.Member {
	index := make(map[string]*models.Member, len(members))
	for i := range members {
		index[members[i].ID] = &members[i]
	}
	return index
}
