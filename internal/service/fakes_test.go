package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"time"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type fakeMemberRepo struct {
	members []models.Member
	err     error
}

func (f *fakeMemberRepo) List(context.Context, models.MemberFilter) ([]models.Member, error) {
	return f.members, f.err
}

func (f *fakeMemberRepo) Count(context.Context) (int, error) {
	return len(f.members), f.err
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id string) (*models.Member, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			m := f.members[i]
			return &m, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeMemberRepo) FindByMhtID(_ context.Context, mhtID string) (*models.Member, error) {
	for i := range f.members {
		if f.members[i].MhtID == mhtID {
			m := f.members[i]
			return &m, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeMemberRepo) Create(_ context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = "generated"
	}
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeMemberRepo) Update(_ context.Context, member *models.Member) error {
	for i := range f.members {
		if f.members[i].ID == member.ID {
			f.members[i] = *member
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeMemberRepo) Delete(_ context.Context, id string) error {
	for i := range f.members {
		if f.members[i].ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeAttendanceRepo struct {
	records []models.AttendanceRecord
	created []models.AttendanceRecord
	deleted []string
}

func (f *fakeAttendanceRepo) List(context.Context) ([]models.AttendanceRecord, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListByMember(_ context.Context, memberID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByID(_ context.Context, id string) (*models.AttendanceRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record *models.AttendanceRecord) error {
	record.ID = "new-attendance"
	f.created = append(f.created, *record)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record *models.AttendanceRecord) error {
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i] = *record
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStoryRepo struct {
	stories    []models.Story
	characters []models.Character
}

func (f *fakeStoryRepo) List(_ context.Context, includeInactive bool) ([]models.Story, error) {
	var out []models.Story
	for _, s := range f.stories {
		if includeInactive || s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) FindByID(_ context.Context, id string) (*models.Story, error) {
	for i := range f.stories {
		if f.stories[i].ID == id {
			s := f.stories[i]
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStoryRepo) Create(_ context.Context, story *models.Story) error {
	story.ID = "new-story"
	f.stories = append(f.stories, *story)
	return nil
}

func (f *fakeStoryRepo) Update(context.Context, *models.Story) error { return nil }

func (f *fakeStoryRepo) Deactivate(_ context.Context, id string) error {
	for i := range f.stories {
		if f.stories[i].ID == id {
			f.stories[i].IsActive = false
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStoryRepo) ListCharacters(_ context.Context, storyID string) ([]models.Character, error) {
	var out []models.Character
	for _, c := range f.characters {
		if storyID == "" || c.StoryID == storyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) CreateCharacter(_ context.Context, character *models.Character) error {
	character.ID = "new-character"
	f.characters = append(f.characters, *character)
	return nil
}

func (f *fakeStoryRepo) DeleteCharacter(context.Context, string) error { return sql.ErrNoRows }

type fakeRoleRepo struct {
	roles []models.Role
}

func (f *fakeRoleRepo) List(context.Context) ([]models.Role, error) { return f.roles, nil }

type fakeCounter struct {
	count int
	err   error
}

func (f fakeCounter) Count(context.Context) (int, error)       { return f.count, f.err }
func (f fakeCounter) CountActive(context.Context) (int, error) { return f.count, f.err }

type fakePollRepo struct {
	polls     map[string]models.Poll
	responses []models.PollResponse
	created   []models.Poll
	createErr error
}

func (f *fakePollRepo) FindByID(_ context.Context, id string) (*models.Poll, error) {
	poll, ok := f.polls[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &poll, nil
}

func (f *fakePollRepo) ListResponses(_ context.Context, pollID string) ([]models.PollResponse, error) {
	var out []models.PollResponse
	for _, r := range f.responses {
		if r.PollID == pollID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePollRepo) UpsertResponse(_ context.Context, response *models.PollResponse) error {
	for i := range f.responses {
		if f.responses[i].PollID == response.PollID && f.responses[i].MemberID == response.MemberID {
			f.responses[i].SelectedOption = response.SelectedOption
			return nil
		}
	}
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakePollRepo) ListByNotificationIDs(_ context.Context, ids []string) ([]models.Poll, error) {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Poll
	for _, p := range f.polls {
		if p.NotificationID != nil && wanted[*p.NotificationID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePollRepo) Create(_ context.Context, poll *models.Poll) error {
	if f.createErr != nil {
		return f.createErr
	}
	poll.ID = "new-poll"
	f.created = append(f.created, *poll)
	return nil
}

type fakeCacheRepo struct {
	store map[string][]byte
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	removed := 0
	for key := range f.store {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.store, key)
			removed++
		}
	}
	return removed, nil
}

type spyInvalidator struct {
	calls int
}

func (s *spyInvalidator) Invalidate(context.Context) { s.calls++ }

func adminClaims(id string) *models.JWTClaims {
	return &models.JWTClaims{MemberID: id, Role: models.RoleAdmin}
}

func memberClaims(id string) *models.JWTClaims {
	return &models.JWTClaims{MemberID: id, Role: models.RoleMember}
}
