package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/render"
)

func TestProjectModalCreateFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login()

	resp := env.do(env.client, http.MethodPost, "/admin/modals?kind=project", nil, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	modal := decode[admin.ModalView](t, resp)
	assert.Equal(t, "create", modal.Mode)
	assert.Equal(t, admin.StatePopulated, modal.State)
	base := "/admin/modals/" + modal.ID

	resp = env.do(env.client, http.MethodPost, base+"/images", AddImageRequest{URL: "https://cdn.example.com/a.jpg"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, header := multipartBody(t, map[string]string{"x": "10", "y": "10", "size": "100"},
		formFile{"image", "shot.png", "image/png", pngBytes(t, 200, 150)})
	resp = env.do(env.client, http.MethodPost, base+"/crop", body, header)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	modal = decode[admin.ModalView](t, resp)
	assert.True(t, strings.HasPrefix(modal.PendingImage, "cropped-"))

	resp = env.do(env.client, http.MethodPost, base+"/submit", SubmitModalRequest{Values: admin.Values{
		"title":        "Shop",
		"description":  "Storefront",
		"platform":     "Web",
		"technologies": "Go, React",
	}}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[admin.SubmitResult](t, resp)
	assert.Equal(t, "insert", result.Action)
	assert.Equal(t, []int{10, 80, 100}, result.Progress)
	require.Len(t, result.Table.Rows, 1)

	keys := env.images.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "projects/"))

	resp = env.do(env.client, http.MethodGet, base, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	portfolio := decode[render.PortfolioView](t, env.do(env.client, http.MethodGet, "/api/projects", nil, nil))
	require.Len(t, portfolio.Projects, 1)
	assert.Equal(t, "https://cdn.example.com/a.jpg", portfolio.Projects[0].CoverURL)
}

func TestModalValidationKeepsModalOpen(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login()

	modal := decode[admin.ModalView](t, env.do(env.client, http.MethodPost, "/admin/modals?kind=review", nil, nil))
	base := "/admin/modals/" + modal.ID

	resp := env.do(env.client, http.MethodPost, base+"/submit", SubmitModalRequest{Values: admin.Values{"client_name": "Kim"}}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	modal = decode[admin.ModalView](t, env.do(env.client, http.MethodGet, base, nil, nil))
	assert.Equal(t, admin.StatePopulated, modal.State)
	assert.Equal(t, "Kim", modal.Values["client_name"])
	assert.NotEmpty(t, modal.Error)
}

func TestCropRejectsWrongFiles(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login()
	modal := decode[admin.ModalView](t, env.do(env.client, http.MethodPost, "/admin/modals?kind=team", nil, nil))
	base := "/admin/modals/" + modal.ID

	body, header := multipartBody(t, nil, formFile{"image", "notes.txt", "text/plain", []byte("plain text")})
	resp := env.do(env.client, http.MethodPost, base+"/crop", body, header)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please select an image file", decode[ErrorResponse](t, resp).Error)

	big := append(pngBytes(t, 8, 8), make([]byte, 6<<20)...)
	body, header = multipartBody(t, nil, formFile{"image", "big.png", "image/png", big})
	resp = env.do(env.client, http.MethodPost, base+"/crop", body, header)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "Image size must be less than 5MB", decode[ErrorResponse](t, resp).Error)
}

func TestGalleryReorderOverHTTP(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login()
	modal := decode[admin.ModalView](t, env.do(env.client, http.MethodPost, "/admin/modals?kind=project", nil, nil))
	base := "/admin/modals/" + modal.ID

	for _, u := range []string{"a", "b", "c", "d"} {
		env.do(env.client, http.MethodPost, base+"/images", AddImageRequest{URL: "https://cdn.example.com/" + u}, nil)
	}
	resp := env.do(env.client, http.MethodPost, base+"/images/move", MoveImageRequest{From: 2, To: 0}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	modal = decode[admin.ModalView](t, resp)
	assert.Equal(t, admin.ImageList{
		"https://cdn.example.com/c", "https://cdn.example.com/a", "https://cdn.example.com/b", "https://cdn.example.com/d",
	}, modal.Images)

	resp = env.do(env.client, http.MethodDelete, base+"/images/3", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[admin.ModalView](t, resp).Images, 3)

	assert.Equal(t, http.StatusBadRequest, env.do(env.client, http.MethodDelete, base+"/images/9", nil, nil).StatusCode)
}

func TestEditModalLoadsRecord(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	rating := 4
	review := &models.ClientReview{ClientName: "Kim", ReviewText: "Great", Rating: &rating, Visible: true}
	require.NoError(t, env.db.ClientReviewRepo().Add(ctx, review))
	env.login()

	resp := env.do(env.client, http.MethodPost, "/admin/modals?kind=review&id="+review.ID.String(), nil, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	modal := decode[admin.ModalView](t, resp)
	assert.Equal(t, "edit", modal.Mode)
	assert.Equal(t, "4", modal.Values["rating"])

	resp = env.do(env.client, http.MethodPost, "/admin/modals/"+modal.ID+"/submit", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "update", decode[admin.SubmitResult](t, resp).Action)

	reviews, err := env.db.ClientReviewRepo().FindAll(ctx, database.ListOptions{})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Great", reviews[0].ReviewText)
}

func TestClosedModalIsGone(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login()
	modal := decode[admin.ModalView](t, env.do(env.client, http.MethodPost, "/admin/modals?kind=team", nil, nil))

	require.Equal(t, http.StatusOK, env.do(env.client, http.MethodDelete, "/admin/modals/"+modal.ID, nil, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, env.do(env.client, http.MethodGet, "/admin/modals/"+modal.ID, nil, nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, env.do(env.client, http.MethodPost, "/admin/modals?kind=blog", nil, nil).StatusCode)
}
