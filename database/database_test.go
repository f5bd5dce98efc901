package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/database/dbtest"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func ptr[T any](v T) *T { return &v }

func TestProjectRepoOrdersNewestFirstAndLimits(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepo(dbtest.New(t))

	for i, title := range []string{"old", "middle", "new"} {
		p := &models.Project{Title: title, Description: "d", Platform: "Web", Technologies: "Go"}
		p.CreatedAt = dbtest.At(i)
		require.NoError(t, repo.Add(ctx, p))
	}

	all, err := repo.FindAll(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].Title)
	assert.Equal(t, "old", all[2].Title)

	recent, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "middle", recent[1].Title)
}

func TestProjectRepoUpdateClearsOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepo(dbtest.New(t))

	p := &models.Project{Title: "Site", Description: "d", Platform: "Web", Technologies: "Go", ProjectLink: ptr("https://x.dev")}
	p.SetImages([]string{"a.jpg", "b.jpg"})
	require.NoError(t, repo.Add(ctx, p))
	created := p.CreatedAt

	update := &models.Project{Title: "Site v2", Description: "d", Platform: "Web", Technologies: "Go, React"}
	update.ID = p.ID
	update.SetImages([]string{"b.jpg"})
	require.NoError(t, repo.Update(ctx, update))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site v2", got.Title)
	assert.Nil(t, got.ProjectLink)
	assert.Equal(t, []string{"b.jpg"}, got.Images())
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "b.jpg", *got.ImageURL)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestProjectRepoMissingRows(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepo(dbtest.New(t))

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	missing := &models.Project{Title: "x"}
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func TestTeamMemberDeactivateKeepsRow(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamMemberRepo(dbtest.New(t))

	alice := &models.TeamMember{Name: "Alice", Role: "Engineer", Bio: "b", Active: true}
	bob := &models.TeamMember{Name: "Bob", Role: "Designer", Bio: "b", Active: true}
	require.NoError(t, repo.Add(ctx, alice))
	require.NoError(t, repo.Add(ctx, bob))

	require.NoError(t, repo.Deactivate(ctx, alice.ID))

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Bob", active[0].Name)

	stored, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestJobApplicationFiltersAndStatusUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewJobApplicationRepo(dbtest.New(t))

	dev := &models.JobApplication{FullName: "Dana", Email: "dana@x.dev", Position: "Developer", ExperienceYears: ptr(4), CoverLetter: ptr("hi")}
	des := &models.JobApplication{FullName: "Eli", Email: "eli@x.dev", Position: "Designer", Status: models.StatusReviewed}
	require.NoError(t, repo.Add(ctx, dev))
	require.NoError(t, repo.Add(ctx, des))
	assert.Equal(t, models.StatusPending, dev.Status)

	byPosition, err := repo.FindAll(ctx, ListOptions{Filters: map[string]any{"position": "Developer"}})
	require.NoError(t, err)
	require.Len(t, byPosition, 1)
	assert.Equal(t, "Dana", byPosition[0].FullName)

	require.NoError(t, repo.UpdateStatus(ctx, dev.ID, models.StatusShortlisted))
	got, err := repo.FindByID(ctx, dev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, got.Status)
	assert.Equal(t, "Dana", got.FullName)
	assert.Equal(t, 4, *got.ExperienceYears)
	assert.Equal(t, "hi", *got.CoverLetter)

	byStatus, err := repo.FindAll(ctx, ListOptions{Filters: map[string]any{"status": models.StatusShortlisted}})
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	positions, err := repo.Positions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Designer", "Developer"}, positions)

	_, err = repo.FindAll(ctx, ListOptions{Filters: map[string]any{"email": "x"}})
	assert.Error(t, err)
}

func TestContactMessageMarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewContactMessageRepo(dbtest.New(t))

	msg := &models.ContactMessage{Name: "Sam", Email: "sam@x.dev", Subject: "Hi", Message: "Hello"}
	require.NoError(t, repo.Add(ctx, msg))
	require.NoError(t, repo.MarkRead(ctx, msg.ID))
	require.NoError(t, repo.MarkRead(ctx, msg.ID))

	got, err := repo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
}

func TestClientReviewVisibility(t *testing.T) {
	ctx := context.Background()
	repo := NewClientReviewRepo(dbtest.New(t))

	for i := 0; i < 3; i++ {
		r := &models.ClientReview{ClientName: "c", ReviewText: "great", Visible: i != 1}
		r.CreatedAt = dbtest.At(i)
		require.NoError(t, repo.Add(ctx, r))
	}

	visible, err := repo.FindVisible(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	require.NoError(t, repo.SetVisible(ctx, visible[0].ID, false))
	visible, err = repo.FindVisible(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}
