package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/database/dbtest"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func TestDeleteRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	p := &models.Project{Title: "Old", Description: "d", Platform: "Web", Technologies: "Go"}
	require.NoError(t, env.db.ProjectRepo().Add(ctx, p))
	env.login()

	resp := env.do(env.client, http.MethodDelete, "/admin/projects/"+p.ID.String(), nil, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "confirm", decode[ErrorResponse](t, resp).Field)

	resp = env.do(env.client, http.MethodDelete, "/admin/projects/"+p.ID.String()+"?confirm=true", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[admin.TableView](t, resp)
	assert.Empty(t, view.Rows)
	assert.Equal(t, "No projects yet. Add your first project!", view.Empty)

	_, err := env.db.ProjectRepo().FindByID(ctx, p.ID)
	assert.Error(t, err)
}

func TestApplicationStatusUpdateChangesOnlyStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	notes := "strong portfolio"
	app := &models.JobApplication{FullName: "Sam", Email: "sam@example.com", Position: "Designer", Notes: &notes}
	require.NoError(t, env.db.JobApplicationRepo().Add(ctx, app))
	env.login()

	path := "/admin/applications/" + app.ID.String() + "/status"
	resp := env.do(env.client, http.MethodPatch, path, StatusRequest{Status: "shortlisted"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.JobApplication](t, resp)
	assert.Equal(t, models.StatusShortlisted, updated.Status)
	assert.Equal(t, "Sam", updated.FullName)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	resp = env.do(env.client, http.MethodPatch, path, StatusRequest{Status: "ghosted"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApplicationsTableFilters(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	for i, pos := range []string{"Designer", "Engineer", "Designer"} {
		app := &models.JobApplication{FullName: "A", Email: "a@example.com", Position: pos}
		app.CreatedAt = dbtest.At(i)
		require.NoError(t, env.db.JobApplicationRepo().Add(ctx, app))
	}
	env.login()

	view := decode[admin.TableView](t, env.do(env.client, http.MethodGet, "/admin/applications?position=Designer", nil, nil))
	assert.Len(t, view.Rows, 2)

	positions := decode[[]string](t, env.do(env.client, http.MethodGet, "/admin/applications/positions", nil, nil))
	assert.ElementsMatch(t, []string{"Designer", "Engineer"}, positions)

	resp := env.do(env.client, http.MethodGet, "/admin/applications?status=lost", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, env.do(env.client, http.MethodGet, "/admin/blog", nil, nil).StatusCode)
}

func TestViewingMessageMarksItRead(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	msg := &models.ContactMessage{Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, env.db.ContactMessageRepo().Add(ctx, msg))
	env.login()

	resp := env.do(env.client, http.MethodGet, "/admin/messages/"+msg.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[models.ContactMessage](t, resp).Read)

	stored, err := env.db.ContactMessageRepo().FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)

	assert.Equal(t, http.StatusBadRequest, env.do(env.client, http.MethodGet, "/admin/messages/not-a-uuid", nil, nil).StatusCode)
}

func TestReviewVisibilityToggle(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	review := &models.ClientReview{ClientName: "Kim", ReviewText: "Great", Visible: true}
	require.NoError(t, env.db.ClientReviewRepo().Add(ctx, review))
	env.login()

	resp := env.do(env.client, http.MethodPatch, "/admin/reviews/"+review.ID.String()+"/visibility", VisibilityRequest{Visible: false}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[models.ClientReview](t, resp).Visible)

	visible, err := env.db.ClientReviewRepo().FindVisible(ctx, 12)
	require.NoError(t, err)
	assert.Empty(t, visible)
}
