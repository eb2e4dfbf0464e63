package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestJoinAttendanceResolvesRelations(t *testing.T) {
	members := []models.Member{{ID: "m1", Name: "Asha"}, {ID: "m2", Name: "Ravi"}}
	stories := []models.Story{{ID: "s1", Name: "Ramayan"}}
	roles := []models.Role{{ID: "r1", Name: "Lights"}}
	records := []models.AttendanceRecord{
		{ID: "a1", MemberID: "m1", StoryID: strPtr("s1"), RoleID: strPtr("r1"), Status: models.AttendanceStatusReplaced, ReplacedMemberID: strPtr("m2")},
	}

	joined := JoinAttendance(records, members, stories, roles)
	require.Len(t, joined, 1)
	assert.Equal(t, "Asha", joined[0].Member.Name)
	assert.Equal(t, "Ramayan", joined[0].Story.Name)
	assert.Equal(t, "Lights", joined[0].Role.Name)
	assert.Equal(t, "Ravi", joined[0].ReplacedMember.Name)
}

func TestJoinAttendanceDanglingReferences(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: "a1", MemberID: "gone", StoryID: strPtr("missing"), ReplacedMemberID: strPtr("gone-too")},
		{ID: "a2", MemberID: "m1"},
	}
	joined := JoinAttendance(records, []models.Member{{ID: "m1"}}, nil, nil)
	require.Len(t, joined, 2)
	assert.Nil(t, joined[0].Member)
	assert.Nil(t, joined[0].Story)
	assert.Nil(t, joined[0].Role)
	assert.Nil(t, joined[0].ReplacedMember)
	assert.Equal(t, "a1", joined[0].ID)
	assert.NotNil(t, joined[1].Member)
}

func TestJoinPollResponsesAndReports(t *testing.T) {
	members := []models.Member{{ID: "m1", Name: "Asha"}}
	responses := JoinPollResponses([]models.PollResponse{{MemberID: "m1"}, {MemberID: "m9"}}, members)
	require.Len(t, responses, 2)
	assert.Equal(t, "Asha", responses[0].Member.Name)
	assert.Nil(t, responses[1].Member)

	reports := JoinMemberReports([]models.MemberReport{{MemberID: "m1"}}, members)
	require.Len(t, reports, 1)
	assert.Equal(t, "Asha", reports[0].Member.Name)
}
