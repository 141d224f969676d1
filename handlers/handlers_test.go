package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitely/api-gateway/internal/aiclient"
	"invitely/api-gateway/internal/fields"
	"invitely/api-gateway/internal/mirror"
	"invitely/api-gateway/internal/render"
	"invitely/api-gateway/internal/store"
	"invitely/api-gateway/internal/testsupport"
	"invitely/api-gateway/models"
)

type fakePrefiller struct {
	enabled bool
	data    map[string]string
	err     error
	got     []models.Answer
}

func (f *fakePrefiller) Enabled() bool { return f.enabled }

func (f *fakePrefiller) Prefill(_ context.Context, answers []models.Answer) (map[string]string, error) {
	f.got = answers
	return f.data, f.err
}

type fakeMirror struct {
	mu        sync.Mutex
	published []string
	records   []models.InviteRecord
	err       error
}

func (f *fakeMirror) Enabled() bool { return true }

func (f *fakeMirror) Publish(_ context.Context, inv *store.Invite, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, inv.ID)
	return f.err
}

func (f *fakeMirror) Recent(context.Context, int) ([]models.InviteRecord, error) {
	return f.records, f.err
}

func newTestEnv(t *testing.T, p Prefiller, m mirror.Mirror) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	defaults, err := fields.LoadDefaults("")
	require.NoError(t, err)
	staticDir := t.TempDir()
	st, err := store.New(staticDir)
	require.NoError(t, err)
	renderer, err := render.New()
	require.NoError(t, err)

	h := NewApplicationHandler(defaults, st, renderer, p, m, logger, aiclient.DefaultQuestions)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, h, staticDir)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func postCreate(t *testing.T, app *fiber.App, values map[string]string, uploads []testsupport.Upload) (*http.Response, map[string]any) {
	t.Helper()
	body, contentType := testsupport.MultipartBody(t, values, uploads)
	req := httptest.NewRequest(http.MethodPost, "/api/create", body)
	req.Header.Set("Content-Type", contentType)

	resp, raw := doRequest(t, app, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp, out
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, []byte) {
	t.Helper()
	return doRequest(t, app, httptest.NewRequest(http.MethodGet, url, nil))
}

func TestCreateAndViewInvite(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	resp, out := postCreate(t, app, testsupport.CompleteFields(), testsupport.NamedPhotos())
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %v", out)

	assert.Equal(t, true, out["ok"])
	id, _ := out["invite_id"].(string)
	require.True(t, store.ValidID(id), "invite_id %q", id)
	assert.Equal(t, "/invites/"+id+"/", out["url"])
	assert.Equal(t, "/static/invites/"+id+"/index.html", out["direct_static_url"])

	for _, url := range []string{"/invites/" + id + "/", "/invites/" + id} {
		resp, page := get(t, app, url)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, url)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, string(page), "Grand Hotel Taipei")
		assert.Contains(t, string(page), "We met in the library in 2015.")
		for _, name := range []string{"01-cover.jpg", "02-story.png", "03-details.webp", "04-rsvp.jpeg"} {
			assert.Contains(t, string(page), "/static/invites/"+id+"/photos/"+name)
		}
	}

	resp, photo := get(t, app, "/static/invites/"+id+"/photos/02-story.png")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "story-bytes", string(photo))

	resp, _ = get(t, app, "/static/invites/"+id+"/index.html")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateOptionalFieldsUseDefaults(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	resp, out := postCreate(t, app, testsupport.CompleteFields(), testsupport.NamedPhotos())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, page := get(t, app, out["url"].(string))
	for _, want := range []string{"我們的故事", "Wedding Day", "當天流程與場地資訊", "前往 RSVP 表單", "C &amp; Y Wedding"} {
		assert.Contains(t, string(page), want)
	}
}

func TestCreateKeepsTagLikeStoryText(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	values := testsupport.CompleteFields()
	values["story_p1"] = "Write to us <chen.yu@example.com>"
	resp, out := postCreate(t, app, values, testsupport.NamedPhotos())
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %v", out)

	_, page := get(t, app, out["url"].(string))
	assert.Contains(t, string(page), "Write to us &lt;chen.yu@example.com&gt;")
}

func TestCreateMissingRequiredField(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	for _, f := range fields.Schema() {
		if !f.Required {
			continue
		}
		t.Run(f.Key, func(t *testing.T) {
			values := testsupport.CompleteFields()
			values[f.Key] = "   "
			resp, out := postCreate(t, app, values, testsupport.NamedPhotos())
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, false, out["ok"])
			assert.Contains(t, out["error"], f.Key)
		})
	}
}

func TestCreateRejectsUnsupportedPhoto(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	uploads := testsupport.NamedPhotos()
	uploads[1].Filename = "story.gif"
	resp, out := postCreate(t, app, testsupport.CompleteFields(), uploads)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "photo_story")

	resp, out = postCreate(t, app, testsupport.CompleteFields(), uploads[:3])
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "photo_rsvp")
}

func TestCreateWithPhotoList(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	var list []testsupport.Upload
	for _, u := range testsupport.NamedPhotos() {
		u.Field = fields.PhotoListField
		list = append(list, u)
	}

	resp, out := postCreate(t, app, testsupport.CompleteFields(), list)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %v", out)
	id := out["invite_id"].(string)

	resp, photo := get(t, app, "/static/invites/"+id+"/photos/04-rsvp.jpeg")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "rsvp-bytes", string(photo))

	resp, out = postCreate(t, app, testsupport.CompleteFields(), list[:2])
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "photos")
}

func TestCreateRequiresMultipart(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/create", strings.NewReader(`{"page_title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestViewUnknownInvite(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)

	for _, url := range []string{"/invites/0123456789/", "/invites/nope", "/invites/..%2F..%2Fetc"} {
		resp, _ := get(t, app, url)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, url)
	}
}

func TestCreatePage(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{enabled: true}, nil)

	for _, url := range []string{"/", "/create"} {
		resp, page := get(t, app, url)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, string(page), `name="page_title"`)
		assert.Contains(t, string(page), `id="prefill"`)
	}
}

func postPrefill(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/prefill", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, raw := doRequest(t, app, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp, out
}

func TestPrefillInvite(t *testing.T) {
	p := &fakePrefiller{enabled: true, data: map[string]string{"tl1_time": "18:00", "venue_address": ""}}
	app := newTestEnv(t, p, nil)

	resp, out := postPrefill(t, app, `{"answers":[{"q":"婚禮開始時間？","a":"18:00"}]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %v", out)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, map[string]any{"tl1_time": "18:00", "venue_address": ""}, out["data"])
	assert.Equal(t, []models.Answer{{Q: "婚禮開始時間？", A: "18:00"}}, p.got)
}

func TestPrefillRejectsBadInput(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{enabled: true}, nil)

	for _, body := range []string{`{}`, `{"answers":[]}`, `not json`, `{"answers":"x"}`} {
		resp, out := postPrefill(t, app, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, false, out["ok"], body)
	}
}

func TestPrefillErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"no usable answers", aiclient.ErrNoAnswers, fiber.StatusBadRequest},
		{"missing key", aiclient.ErrMissingAPIKey, fiber.StatusInternalServerError},
		{"upstream failure", errors.New("model API returned status 502"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestEnv(t, &fakePrefiller{enabled: true, err: tc.err}, nil)
			resp, out := postPrefill(t, app, `{"answers":[{"q":"q","a":"a"}]}`)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Contains(t, out["error"], tc.err.Error())
			if tc.status == fiber.StatusInternalServerError {
				assert.True(t, strings.HasPrefix(out["error"].(string), "Server error: "))
			}
		})
	}
}

func TestPrefillWithoutCredential(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	app := newTestEnv(t, aiclient.NewAIClient(aiclient.Config{}, logger), nil)

	resp, out := postPrefill(t, app, `{"answers":[{"q":"q","a":"a"}]}`)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, out["error"], "OPENAI_API_KEY")
}

func TestMirrorIntegration(t *testing.T) {
	m := &fakeMirror{records: []models.InviteRecord{{InviteID: "abcdef0123"}}}
	app := newTestEnv(t, &fakePrefiller{}, m)

	resp, out := postCreate(t, app, testsupport.CompleteFields(), testsupport.NamedPhotos())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{out["invite_id"].(string)}, m.published)

	resp, body := get(t, app, "/api/invites?limit=5")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "abcdef0123")

	m.err = errors.New("bucket unavailable")
	resp, _ = postCreate(t, app, testsupport.CompleteFields(), testsupport.NamedPhotos())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListInvitesWithoutMirror(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)
	resp, _ := get(t, app, "/api/invites")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestEnv(t, &fakePrefiller{}, nil)
	resp, _ := get(t, app, "/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
