package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/database/dbtest"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

const testPassword = "letmein"

type fakeNotifier struct {
	mu           sync.Mutex
	contacts     []*models.ContactMessage
	applications []*models.JobApplication
	err          error
}

func (n *fakeNotifier) Configured() bool { return true }

func (n *fakeNotifier) NotifyContact(_ context.Context, msg *models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, msg)
	return n.err
}

func (n *fakeNotifier) NotifyApplication(_ context.Context, app *models.JobApplication) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.applications = append(n.applications, app)
	return n.err
}

type testEnv struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	db       database.Database
	images   *storage.MemoryBucket
	resumes  *storage.MemoryBucket
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T, cfg map[string]string) *testEnv {
	t.Helper()
	db := database.New(dbtest.New(t))
	images := storage.NewMemoryBucket("images", "https://site.supabase.co")
	resumes := storage.NewMemoryBucket("resumes", "https://site.supabase.co")
	notifier := &fakeNotifier{}

	deps := Dependencies{
		Database: db,
		Gate:     admin.NewGate(admin.GateConfig{Password: testPassword, TokenSecret: "token-secret"}),
		Modals:   admin.NewMemoryModalStore(time.Hour),
		Images:   storage.NewUploader(images),
		Resumes:  storage.NewUploader(resumes),
		Notifier: notifier,
	}
	if cfg == nil {
		cfg = map[string]string{}
	}
	if _, ok := cfg["SESSION_KEY"]; !ok {
		cfg["SESSION_KEY"] = "0123456789abcdef0123456789abcdef"
	}
	mux, err := newRouter(deps, withConfig(cfg))
	require.NoError(t, err)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		t:        t,
		server:   server,
		client:   newClient(t),
		db:       db,
		images:   images,
		resumes:  resumes,
		notifier: notifier,
	}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// do sends body as JSON unless it is already an io.Reader, in which case contentType is used.
func (e *testEnv) do(client *http.Client, method, path string, body any, header http.Header) *http.Response {
	e.t.Helper()
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(e.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) login() {
	e.t.Helper()
	resp := e.do(e.client, http.MethodPost, "/admin/login", LoginRequest{Password: testPassword}, nil)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 90, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
