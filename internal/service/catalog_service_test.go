package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type fakeShowRepo struct {
	shows []models.Show
}

func (f *fakeShowRepo) List(context.Context) ([]models.Show, error) { return f.shows, nil }

func (f *fakeShowRepo) FindByID(_ context.Context, id string) (*models.Show, error) {
	for i := range f.shows {
		if f.shows[i].ID == id {
			s := f.shows[i]
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeShowRepo) Create(_ context.Context, show *models.Show) error {
	show.ID = "show-new"
	f.shows = append(f.shows, *show)
	return nil
}

func (f *fakeShowRepo) Update(context.Context, *models.Show) error { return nil }
func (f *fakeShowRepo) Delete(context.Context, string) error       { return sql.ErrNoRows }

type fakeReportRepo struct {
	reports []models.MemberReport
}

func (f *fakeReportRepo) List(_ context.Context, unreadOnly bool) ([]models.MemberReport, error) {
	var out []models.MemberReport
	for _, r := range f.reports {
		if !unreadOnly || !r.IsRead {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) Create(_ context.Context, report *models.MemberReport) error {
	report.ID = "report-new"
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepo) MarkRead(_ context.Context, id string) error {
	for i := range f.reports {
		if f.reports[i].ID == id {
			f.reports[i].IsRead = true
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeLinkRepo struct {
	links []models.PracticeLink
}

func (f *fakeLinkRepo) List(context.Context, string) ([]models.PracticeLink, error) { return f.links, nil }

func (f *fakeLinkRepo) Create(_ context.Context, link *models.PracticeLink) error {
	f.links = append(f.links, *link)
	return nil
}

func (f *fakeLinkRepo) Delete(context.Context, string) error { return nil }

func TestStoryServiceListAttachesCharacters(t *testing.T) {
	repo := &fakeStoryRepo{
		stories: []models.Story{{ID: "s1", Name: "Akram", IsActive: true}, {ID: "s2", Name: "Retired"}},
		characters: []models.Character{
			{ID: "c1", StoryID: "s1", Name: "Narrator"},
			{ID: "c2", StoryID: "s1", Name: "King"},
		},
	}
	svc := NewStoryService(repo, nil, nil)

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Len(t, active[0].Characters, 2)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotNil(t, all[1].Characters)
	assert.Empty(t, all[1].Characters)
}

func TestStoryServiceDeleteDeactivates(t *testing.T) {
	repo := &fakeStoryRepo{stories: []models.Story{{ID: "s1", Name: "Akram", IsActive: true}}}
	svc := NewStoryService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "s1"))
	require.Len(t, repo.stories, 1)
	assert.False(t, repo.stories[0].IsActive)

	err := svc.Delete(context.Background(), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestStoryServiceCharacters(t *testing.T) {
	repo := &fakeStoryRepo{stories: []models.Story{{ID: "s1", Name: "Akram", IsActive: true}}}
	svc := NewStoryService(repo, nil, nil)

	character, err := svc.AddCharacter(context.Background(), "s1", CharacterRequest{Name: " Narrator "})
	require.NoError(t, err)
	assert.Equal(t, "Narrator", character.Name)
	assert.Equal(t, "s1", character.StoryID)

	_, err = svc.AddCharacter(context.Background(), "missing", CharacterRequest{Name: "Ghost"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))

	cast, err := svc.Characters(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, cast, 1)

	err = svc.DeleteCharacter(context.Background(), "c-missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestShowServiceCreateParsesDate(t *testing.T) {
	repo := &fakeShowRepo{}
	stats := &spyInvalidator{}
	svc := NewShowService(repo, stats, nil, nil)

	show, err := svc.Create(context.Background(), ShowRequest{Title: "Diwali Natak", ShowDate: "2024-11-01"})
	require.NoError(t, err)
	assert.True(t, show.IsActive)
	assert.Equal(t, "2024-11-01", calendarDate(show.ShowDate))
	assert.Equal(t, 1, stats.calls)

	_, err = svc.Create(context.Background(), ShowRequest{Title: "Bad", ShowDate: "1 Nov"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))

	err = svc.Delete(context.Background(), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
	assert.Equal(t, 1, stats.calls)
}

func TestMemberReportServiceSubmitAndList(t *testing.T) {
	repo := &fakeReportRepo{}
	members := &fakeMemberRepo{members: []models.Member{{ID: "m1", Name: "Asha"}}}
	svc := NewMemberReportService(repo, members, nil, nil)

	_, err := svc.Submit(context.Background(), nil, MemberReportRequest{Subject: "Props", Content: "Missing crown"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))

	report, err := svc.Submit(context.Background(), memberClaims("m1"), MemberReportRequest{Subject: " Props ", Content: "Missing crown"})
	require.NoError(t, err)
	assert.Equal(t, "Props", report.Subject)
	assert.Equal(t, "m1", report.MemberID)

	unread, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.NotNil(t, unread[0].Member)
	assert.Equal(t, "Asha", unread[0].Member.Name)

	require.NoError(t, svc.MarkRead(context.Background(), report.ID))
	unread, err = svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	err = svc.MarkRead(context.Background(), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestPracticeLinkServiceValidatesURL(t *testing.T) {
	repo := &fakeLinkRepo{}
	svc := NewPracticeLinkService(repo, nil, nil)

	_, err := svc.Create(context.Background(), adminClaims("admin"), PracticeLinkRequest{Title: "Script", URL: "not a url"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))

	link, err := svc.Create(context.Background(), adminClaims("admin"), PracticeLinkRequest{Title: "Script", URL: "https://example.com/script.pdf"})
	require.NoError(t, err)
	require.NotNil(t, link.CreatedBy)
	assert.Equal(t, "admin", *link.CreatedBy)
	assert.Len(t, repo.links, 1)
}
