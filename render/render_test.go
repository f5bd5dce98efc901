package render

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

var errOffline = errors.New("connection refused")

type fakeProjects struct {
	projects []*models.Project
	err      error
	limit    int
}

func (f *fakeProjects) FindRecent(_ context.Context, limit int) ([]*models.Project, error) {
	f.limit = limit
	return f.projects, f.err
}

type fakeTeam struct {
	members []*models.TeamMember
	err     error
}

func (f *fakeTeam) FindActive(context.Context) ([]*models.TeamMember, error) {
	return f.members, f.err
}

type fakeReviews struct {
	reviews []*models.ClientReview
	err     error
}

func (f *fakeReviews) FindVisible(context.Context, int) ([]*models.ClientReview, error) {
	return f.reviews, f.err
}

func ptr[T any](v T) *T { return &v }

func newRenderer(t *testing.T, p ProjectSource, tm TeamSource, r ReviewSource) *Renderer {
	t.Helper()
	rd, err := New(p, tm, r, Options{})
	require.NoError(t, err)
	return rd
}

func galleryProject() *models.Project {
	p := &models.Project{Title: "Shop", Description: "Storefront", Platform: "Web", Technologies: "Go, React"}
	p.SetImages([]string{"https://cdn/a.jpg", "https://cdn/b.jpg"})
	return p
}

func TestPortfolioCards(t *testing.T) {
	legacy := &models.Project{Title: "Old", Platform: "iOS", ImageURL: ptr("https://cdn/old.jpg")}
	projects := &fakeProjects{projects: []*models.Project{galleryProject(), legacy}}
	r := newRenderer(t, projects, nil, nil)

	view := r.Portfolio(context.Background())

	require.False(t, view.Fallback)
	require.Len(t, view.Projects, 2)
	assert.Equal(t, DefaultProjectLimit, projects.limit)
	assert.Equal(t, "https://cdn/a.jpg", view.Projects[0].CoverURL)
	assert.Equal(t, []string{"Go", "React"}, view.Projects[0].Technologies)
	assert.Equal(t, "https://cdn/old.jpg", view.Projects[1].CoverURL)
	assert.Equal(t, 1, view.Projects[1].Index)
}

func TestPortfolioFallsBack(t *testing.T) {
	for name, src := range map[string]*fakeProjects{
		"error": {err: errOffline},
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			r := newRenderer(t, src, nil, nil)
			view := r.Portfolio(context.Background())
			assert.True(t, view.Fallback)
			assert.Empty(t, view.Projects)

			var buf bytes.Buffer
			require.NoError(t, r.Execute(&buf, "portfolio", view))
			assert.Contains(t, buf.String(), "portfolio-card--static")
		})
	}
}

func TestProjectDetailCarousel(t *testing.T) {
	r := newRenderer(t, &fakeProjects{projects: []*models.Project{galleryProject()}}, nil, nil)

	detail, err := r.ProjectDetail(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, detail.Slides, 2)
	assert.True(t, detail.Slides[0].Active)
	assert.False(t, detail.Slides[1].Active)

	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, "project", detail))
	html := buf.String()
	assert.Contains(t, html, `data-scroll-lock="body"`)
	assert.Contains(t, html, `data-slide-count="2"`)
	assert.Contains(t, html, "project-modal__next")
}

func TestProjectDetailOutOfRange(t *testing.T) {
	r := newRenderer(t, &fakeProjects{projects: []*models.Project{galleryProject()}}, nil, nil)

	_, err := r.ProjectDetail(context.Background(), 3)
	assert.Equal(t, http.StatusNotFound, errs.StatusCode(err))

	_, err = r.ProjectDetail(context.Background(), -1)
	assert.Equal(t, http.StatusNotFound, errs.StatusCode(err))
}

func TestTeamView(t *testing.T) {
	members := []*models.TeamMember{
		{Name: "ada lovelace byron", Role: "Engineer", Bio: "Math"},
		{Name: "Grace", Role: "Admiral", ImageURL: ptr("https://cdn/g.jpg")},
	}
	r := newRenderer(t, nil, &fakeTeam{members: members}, nil)

	view := r.Team(context.Background())
	require.Len(t, view.Members, 2)
	assert.Empty(t, view.Message)
	assert.Equal(t, "AL", view.Members[0].Initials)

	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, "team", view))
	assert.Contains(t, buf.String(), `<div class="team-card__avatar">AL</div>`)
	assert.Contains(t, buf.String(), `src="https://cdn/g.jpg"`)
}

func TestTeamMessages(t *testing.T) {
	empty := newRenderer(t, nil, &fakeTeam{}, nil).Team(context.Background())
	assert.Equal(t, "No team members yet. Check back soon!", empty.Message)

	failed := newRenderer(t, nil, &fakeTeam{err: errOffline}, nil).Team(context.Background())
	assert.Equal(t, "Team section coming soon...", failed.Message)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "", Initials("  "))
	assert.Equal(t, "J", Initials("jane"))
	assert.Equal(t, "ÉM", Initials("émile moreau"))
}

func TestReviewsSummary(t *testing.T) {
	reviews := []*models.ClientReview{
		{ClientName: "A", ReviewText: "ok", Rating: ptr(4)},
		{ClientName: "B", ReviewText: "great", Rating: ptr(9)},
		{ClientName: "C", ReviewText: "fine"},
		{ClientName: "D", ReviewText: "meh", Rating: ptr(0)},
		{ClientName: "E", ReviewText: "bad", Rating: ptr(-2)},
	}
	r := newRenderer(t, nil, nil, &fakeReviews{reviews: reviews})

	view := r.Reviews(context.Background())
	require.False(t, view.Fallback)
	require.NotNil(t, view.Summary)
	// 4 + 5 + 5 + 5 + 1
	assert.Equal(t, "4.0", view.Summary.Average)
	assert.Equal(t, []bool{true, true, true, true, false}, view.Summary.Stars)
	assert.Equal(t, 5, view.Reviews[1].Rating)
	assert.Equal(t, 5, view.Reviews[3].Rating, "zero rating counts as missing")
	assert.Equal(t, 1, view.Reviews[4].Rating)

	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, "reviews", view))
	assert.Contains(t, buf.String(), "4.0")
}

func TestReviewsFallBack(t *testing.T) {
	view := newRenderer(t, nil, nil, &fakeReviews{err: errOffline}).Reviews(context.Background())
	assert.True(t, view.Fallback)
	assert.Nil(t, view.Summary)
}

func TestHomeDegradesPerSection(t *testing.T) {
	r := newRenderer(t,
		&fakeProjects{projects: []*models.Project{galleryProject()}},
		&fakeTeam{err: errOffline},
		&fakeReviews{},
	)

	view := r.Home(context.Background())
	assert.False(t, view.Portfolio.Fallback)
	assert.Equal(t, "Team section coming soon...", view.Team.Message)
	assert.True(t, view.Reviews.Fallback)

	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, "home", view))
	html := buf.String()
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Shop")
	assert.Contains(t, html, "review-card--static")
}
