package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type attendanceFixture struct {
	svc     *AttendanceService
	repo    *fakeAttendanceRepo
	members *fakeMemberRepo
	stats   *spyInvalidator
}

func newAttendanceFixture() attendanceFixture {
	members := &fakeMemberRepo{members: []models.Member{
		{ID: "m1", Name: "Asha"},
		{ID: "m2", Name: "Bhavin"},
		{ID: "admin", Name: "Chirag", IsAdmin: true},
	}}
	repo := &fakeAttendanceRepo{records: []models.AttendanceRecord{
		record("m1", "2024-03-01", models.AttendanceStatusPresent),
		record("m2", "2024-03-01", models.AttendanceStatusAbsent),
	}}
	stats := &spyInvalidator{}
	svc := NewAttendanceService(AttendanceServiceParams{
		Repo:    repo,
		Members: members,
		Stories: &fakeStoryRepo{stories: []models.Story{{ID: "s1", Name: "Akram", IsActive: false}}},
		Roles:   &fakeRoleRepo{roles: []models.Role{{ID: "r1", Name: "Lead"}}},
		Stats:   stats,
	})
	return attendanceFixture{svc: svc, repo: repo, members: members, stats: stats}
}

func TestAttendanceServiceCreateForSelf(t *testing.T) {
	f := newAttendanceFixture()
	timeIn, timeOut := "18:00", "21:30"

	created, err := f.svc.Create(context.Background(), memberClaims("m1"), AttendanceRequest{
		Date:         "2024-03-02",
		Status:       "present",
		CharacterIDs: []string{" c1 ", "c2"},
		TimeIn:       &timeIn,
		TimeOut:      &timeOut,
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", created.MemberID)
	assert.Equal(t, models.AttendanceStatusPresent, created.Status)
	assert.Equal(t, "2024-03-02", calendarDate(created.Date))
	assert.Equal(t, []string{"c1", "c2"}, []string(created.CharacterIDs))
	assert.Len(t, f.repo.created, 1)
	assert.Equal(t, 1, f.stats.calls)
}

func TestAttendanceServiceCreateForOtherMember(t *testing.T) {
	f := newAttendanceFixture()
	req := AttendanceRequest{MemberID: "m2", Date: "2024-03-02", Status: "present"}

	_, err := f.svc.Create(context.Background(), memberClaims("m1"), req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))

	created, err := f.svc.Create(context.Background(), adminClaims("admin"), req)
	require.NoError(t, err)
	assert.Equal(t, "m2", created.MemberID)
}

func TestAttendanceServiceCreateRejectsInvalidVariants(t *testing.T) {
	reason := "travelling"
	self := "m1"
	other := "m2"
	ghost := "missing"
	early, late := "20:00", "19:00"
	badClock := "7pm"

	cases := []struct {
		name string
		req  AttendanceRequest
		code string
	}{
		{name: "unknown status", req: AttendanceRequest{Date: "2024-03-02", Status: "late"}, code: appErrors.ErrValidation.Code},
		{name: "bad date", req: AttendanceRequest{Date: "02/03/2024", Status: "present"}, code: appErrors.ErrValidation.Code},
		{name: "present with reason", req: AttendanceRequest{Date: "2024-03-02", Status: "present", Reason: &reason}, code: appErrors.ErrValidation.Code},
		{name: "absent with replacement", req: AttendanceRequest{Date: "2024-03-02", Status: "absent", ReplacedMemberID: &other}, code: appErrors.ErrValidation.Code},
		{name: "replaced without member", req: AttendanceRequest{Date: "2024-03-02", Status: "replaced"}, code: appErrors.ErrValidation.Code},
		{name: "replaced with reason", req: AttendanceRequest{Date: "2024-03-02", Status: "replaced", ReplacedMemberID: &other, Reason: &reason}, code: appErrors.ErrValidation.Code},
		{name: "replaced self", req: AttendanceRequest{Date: "2024-03-02", Status: "replaced", ReplacedMemberID: &self}, code: appErrors.ErrValidation.Code},
		{name: "replaced unknown", req: AttendanceRequest{Date: "2024-03-02", Status: "replaced", ReplacedMemberID: &ghost}, code: appErrors.ErrNotFound.Code},
		{name: "clock format", req: AttendanceRequest{Date: "2024-03-02", Status: "present", TimeIn: &badClock}, code: appErrors.ErrValidation.Code},
		{name: "time out before in", req: AttendanceRequest{Date: "2024-03-02", Status: "present", TimeIn: &early, TimeOut: &late}, code: appErrors.ErrValidation.Code},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAttendanceFixture()
			_, err := f.svc.Create(context.Background(), memberClaims("m1"), tc.req)
			require.Error(t, err)
			assert.True(t, appErrors.HasCode(err, tc.code), err.Error())
			assert.Empty(t, f.repo.created)
			assert.Zero(t, f.stats.calls)
		})
	}
}

func TestAttendanceServiceCreateVariants(t *testing.T) {
	reason := "exam"
	other := "m2"
	f := newAttendanceFixture()

	absent, err := f.svc.Create(context.Background(), memberClaims("m1"), AttendanceRequest{Date: "2024-03-02", Status: "absent", Reason: &reason})
	require.NoError(t, err)
	require.NotNil(t, absent.Reason)
	assert.Equal(t, "exam", *absent.Reason)

	replaced, err := f.svc.Create(context.Background(), memberClaims("m1"), AttendanceRequest{Date: "2024-03-03", Status: "replaced", ReplacedMemberID: &other})
	require.NoError(t, err)
	require.NotNil(t, replaced.ReplacedMemberID)
	assert.Equal(t, "m2", *replaced.ReplacedMemberID)
	assert.Nil(t, replaced.Reason)
}

func TestAttendanceServiceUpdateOwnership(t *testing.T) {
	f := newAttendanceFixture()
	req := AttendanceRequest{Date: "2024-03-01", Status: "absent"}
	targetID := f.repo.records[1].ID

	_, err := f.svc.Update(context.Background(), memberClaims("m1"), targetID, req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))

	updated, err := f.svc.Update(context.Background(), memberClaims("m2"), targetID, AttendanceRequest{Date: "2024-03-01", Status: "present"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, updated.Status)
	assert.Equal(t, "m2", updated.MemberID)

	_, err = f.svc.Update(context.Background(), adminClaims("admin"), "missing", req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestAttendanceServiceDelete(t *testing.T) {
	f := newAttendanceFixture()
	targetID := f.repo.records[0].ID

	err := f.svc.Delete(context.Background(), memberClaims("m2"), targetID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
	assert.Empty(t, f.repo.deleted)

	require.NoError(t, f.svc.Delete(context.Background(), adminClaims("admin"), targetID))
	assert.Equal(t, []string{targetID}, f.repo.deleted)
	assert.Equal(t, 1, f.stats.calls)

	err = f.svc.Delete(context.Background(), nil, targetID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))
}

func TestAttendanceServiceListJoinsAndFilters(t *testing.T) {
	f := newAttendanceFixture()
	story := "s1"
	f.repo.records[0].StoryID = &story
	f.repo.records = append(f.repo.records, record("gone", "2024-03-01", models.AttendanceStatusPresent))

	all, err := f.svc.List(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.NotNil(t, all[0].Member)
	assert.Equal(t, "Asha", all[0].Member.Name)
	require.NotNil(t, all[0].Story)
	assert.Equal(t, "Akram", all[0].Story.Name)
	assert.Nil(t, all[2].Member)

	absent, err := f.svc.List(context.Background(), models.AttendanceFilter{StatusFilter: "absent"})
	require.NoError(t, err)
	require.Len(t, absent, 1)
	assert.Equal(t, "m2", absent[0].MemberID)
}

func TestAttendanceServiceForMember(t *testing.T) {
	f := newAttendanceFixture()

	history, err := f.svc.ForMember(context.Background(), "m1")
	require.NoError(t, err)
	assert.Len(t, history.Records, 1)
	assert.Equal(t, 1, history.Summary.Present)
	assert.Equal(t, 100, history.Summary.Percentage)

	_, err = f.svc.ForMember(context.Background(), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
