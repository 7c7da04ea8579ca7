package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/signature-homes-backend/content"
	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/models"
	"github.com/rpupo63/signature-homes-backend/services"
	"github.com/rpupo63/signature-homes-backend/session"
)

type fakeContact struct {
	got []models.ContactSubmission
	err error
}

func (f *fakeContact) Submit(_ context.Context, s *models.ContactSubmission) error {
	f.got = append(f.got, *s)
	if f.err != nil {
		return f.err
	}
	if err := services.Validate(*s); err != nil {
		return err
	}
	s.RelayStatus = models.RelayStatusSubmitted
	return nil
}

type fakeLister struct {
	limit int
}

func (f *fakeLister) FindRecent(limit int) ([]models.ContactSubmission, error) {
	f.limit = limit
	return []models.ContactSubmission{{ID: uuid.New(), FirstName: "Jane", RelayStatus: models.RelayStatusSubmitted}}, nil
}

type testServer struct {
	handler http.Handler
	contact *fakeContact
	lister  *fakeLister
}

func newTestServer(t *testing.T, c map[string]string) testServer {
	t.Helper()

	file, err := content.Load("")
	require.NoError(t, err)
	catalog, err := file.Catalog()
	require.NoError(t, err)

	contact := &fakeContact{}
	lister := &fakeLister{}
	h := newRouter(Dependencies{
		Content:     file,
		Catalog:     catalog,
		Sessions:    session.NewMemoryStore(0),
		Contact:     contact,
		Submissions: lister,
		Images:      services.NewStaticResolver("https://cdn.example.com"),
	}, withConfig(c))

	return testServer{handler: h, contact: contact, lister: lister}
}

func (s testServer) do(t *testing.T, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func imageIDs(images []models.GalleryImage) []int {
	ids := make([]int, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	return ids
}

func TestHealthAndSite(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Projects)
	assert.Equal(t, 20, health.Images)
	assert.Equal(t, 10, health.ImagesByProject["project-2"])

	rec = s.do(t, http.MethodGet, "/site", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	site := decode[models.SiteInfo](t, rec)
	assert.Equal(t, "Signature Homes of Carolina LLC", site.Name)

	rec = s.do(t, http.MethodGet, "/services", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Service](t, rec), 3)

	rec = s.do(t, http.MethodGet, "/about", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	about := decode[models.AboutPage](t, rec)
	require.Len(t, about.Sections, 3)
	assert.Equal(t, "How We Work", about.Sections[0].Title)
	assert.Len(t, about.Sections[0].Items, 7)
}

func TestProjects(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/projects", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decode[ProjectCollection](t, rec)
	require.Equal(t, 2, projects.Total)
	assert.Equal(t, "project-1", projects.Projects[0].ID, "featured first")
	assert.Equal(t, models.CategoryAll, projects.Category)
	assert.Len(t, projects.Categories, 3)

	rec = s.do(t, http.MethodGet, "/project/project-2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[ProjectDetail](t, rec)
	assert.Equal(t, "Sharp Residence", detail.Project.Name)
	assert.Len(t, detail.Images, 10)
	assert.Equal(t, "https://cdn.example.com/images/gallery/sharp/1.jpg", detail.Images[0].ImageURL)

	rec = s.do(t, http.MethodGet, "/project/project-99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_CategoryFilter(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/projects?category=barndominiums", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	barndos := decode[ProjectCollection](t, rec)
	assert.Equal(t, "barndominiums", barndos.Category)
	require.Equal(t, 1, barndos.Total)
	assert.Equal(t, "project-1", barndos.Projects[0].ID)

	rec = s.do(t, http.MethodGet, "/projects?category=all", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[ProjectCollection](t, rec).Total)

	rec = s.do(t, http.MethodGet, "/projects?category=renovations", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	renovations := decode[ProjectCollection](t, rec)
	assert.Equal(t, 0, renovations.Total)
	assert.NotNil(t, renovations.Projects)

	rec = s.do(t, http.MethodGet, "/projects?category=mansions", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "category", decode[ErrorResponse](t, rec).Field)
}

func TestGallery_Filter(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/gallery", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[GalleryResponse](t, rec)
	assert.Equal(t, 20, all.Total)
	assert.Nil(t, all.Project)
	assert.Nil(t, all.SelectedProject)

	rec = s.do(t, http.MethodGet, "/gallery?project=project-1", "", "")
	one := decode[GalleryResponse](t, rec)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, imageIDs(one.Images))
	require.NotNil(t, one.Project)
	assert.Equal(t, "Luxury Barndo'", one.Project.Name)

	rec = s.do(t, http.MethodGet, "/gallery?project=project-99", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"selectedProject":"project-99","project":null,"images":[],"total":0}`, rec.Body.String())
}

func TestGallery_StatelessNavigate(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/gallery/images/29/next?project=project-2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	nav := decode[NavigationResponse](t, rec)
	assert.Equal(t, 20, nav.Image.ID, "wraps to the first image")
	assert.Equal(t, 0, nav.Index)
	assert.Equal(t, 10, nav.Total)

	rec = s.do(t, http.MethodGet, "/gallery/images/1/previous", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 29, decode[NavigationResponse](t, rec).Image.ID)

	rec = s.do(t, http.MethodGet, "/gallery/images/1/next?project=project-2", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/gallery/images/1/sideways", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/gallery/images/abc/next", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_Lifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/gallery/sessions", "application/json", `{"project":"project-2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[SessionResponse](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 10, created.Total)
	assert.Nil(t, created.Current)
	base := "/gallery/sessions/" + created.ID

	// navigating with the lightbox closed is a conflict
	rec = s.do(t, http.MethodPost, base+"/navigate/next", "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// an image outside the view cannot be opened
	rec = s.do(t, http.MethodPost, base+"/open", "application/json", `{"imageId":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, base+"/open", "application/json", `{"imageId":28}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, decode[SessionResponse](t, rec).Current)

	rec = s.do(t, http.MethodPost, base+"/navigate/next", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 29, decode[SessionResponse](t, rec).Current.ID)

	rec = s.do(t, http.MethodPost, base+"/navigate/next", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode[SessionResponse](t, rec).Current
	assert.Equal(t, 20, current.ID)
	assert.Equal(t, "https://cdn.example.com/images/gallery/sharp/1.jpg", current.ImageURL)

	rec = s.do(t, http.MethodPost, base+"/navigate/prev", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 29, decode[SessionResponse](t, rec).Current.ID)

	// state survives between requests
	rec = s.do(t, http.MethodGet, base, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[SessionResponse](t, rec)
	require.NotNil(t, got.State.OpenImageID)
	assert.Equal(t, 29, *got.State.OpenImageID)

	rec = s.do(t, http.MethodPost, base+"/close", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[SessionResponse](t, rec).Current)

	rec = s.do(t, http.MethodDelete, base, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, base, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_SelectProjectClosesLightbox(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/gallery/sessions", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[SessionResponse](t, rec)
	assert.Equal(t, 20, created.Total)
	base := "/gallery/sessions/" + created.ID

	rec = s.do(t, http.MethodPost, base+"/open", "application/json", `{"imageId":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// same selection keeps the lightbox open
	rec = s.do(t, http.MethodPut, base+"/project", "application/json", `{"project":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decode[SessionResponse](t, rec).Current)

	rec = s.do(t, http.MethodPut, base+"/project", "application/json", `{"project":"project-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[SessionResponse](t, rec)
	assert.Nil(t, updated.Current)
	assert.Equal(t, 10, updated.Total)
	require.NotNil(t, updated.Project)
	assert.Equal(t, "project-1", updated.Project.ID)

	rec = s.do(t, http.MethodPut, base+"/project", "application/json", `{"project":"project-99"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	unknown := decode[SessionResponse](t, rec)
	assert.Equal(t, 0, unknown.Total)
	assert.Nil(t, unknown.Project)
}

func TestSession_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/gallery/sessions/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/gallery/sessions", "application/json", `{"project":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/gallery/sessions", "", "")
	base := "/gallery/sessions/" + decode[SessionResponse](t, rec).ID

	rec = s.do(t, http.MethodPost, base+"/open", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "imageId", decode[ErrorResponse](t, rec).Field)

	rec = s.do(t, http.MethodPost, base+"/navigate/up", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContact_JSON(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"firstName":"John","lastName":"Doe","email":"john.doe@example.com","projectType":"custom-home","message":"Hi"}`
	rec := s.do(t, http.MethodPost, "/contact", "application/json", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[ContactResponse](t, rec)
	assert.Equal(t, "submitted", resp.Status)

	require.Len(t, s.contact.got, 1)
	assert.Equal(t, "custom-home", s.contact.got[0].ProjectType)
	assert.Nil(t, s.contact.got[0].Phone)
}

func TestContact_Form(t *testing.T) {
	s := newTestServer(t, nil)

	form := url.Values{
		"form-name":   {"contact"},
		"firstName":   {"Jane"},
		"lastName":    {"Roe"},
		"email":       {"jane@example.com"},
		"phone":       {"843-555-0100"},
		"projectType": {"renovation"},
		"message":     {"Kitchen remodel"},
	}
	rec := s.do(t, http.MethodPost, "/contact", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, s.contact.got, 1)
	require.NotNil(t, s.contact.got[0].Phone)
	assert.Equal(t, "843-555-0100", *s.contact.got[0].Phone)
}

func TestContact_Errors(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/contact", "text/plain", "hello")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = s.do(t, http.MethodPost, "/contact", "application/json", `{"firstName":"John"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "lastName", decode[ErrorResponse](t, rec).Field)

	s.contact.err = errs.NewSubmissionFailedError(errors.New("upstream 500 with secrets"))
	body := `{"firstName":"John","lastName":"Doe","email":"john@example.com","message":"Hi"}`
	rec = s.do(t, http.MethodPost, "/contact", "application/json", body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	failure := decode[ErrorResponse](t, rec)
	assert.Equal(t, "there was an issue with the submission, please try again", failure.Error)
	assert.NotContains(t, rec.Body.String(), "secrets")
}

func TestAdminSubmissions(t *testing.T) {
	s := newTestServer(t, map[string]string{"ADMIN_TOKEN": "s3cret"})

	rec := s.do(t, http.MethodGet, "/contact/submissions", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/contact/submissions?limit=500", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[SubmissionCollection](t, rec).Total)
	assert.Equal(t, maxSubmissionLimit, s.lister.limit)

	// without a token the route is not mounted
	s = newTestServer(t, nil)
	rec = s.do(t, http.MethodGet, "/contact/submissions", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, map[string]string{"ACCEPTED_ORIGINS": "https://signaturehomesofcarolina.com"})

	req := httptest.NewRequest(http.MethodOptions, "/gallery", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.Header.Set("Origin", "https://signaturehomesofcarolina.com")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://signaturehomesofcarolina.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	file, err := content.Load("")
	require.NoError(t, err)
	catalog, err := file.Catalog()
	require.NoError(t, err)

	srv, err := NewServer(map[string]string{"PORT": "0"}, Dependencies{
		Content:  file,
		Catalog:  catalog,
		Sessions: session.NewMemoryStore(0),
		Contact:  &fakeContact{},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gallery", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_request_duration_seconds_count{method="GET",path="/gallery",status="200"}`)

	_, err = NewServer(nil, Dependencies{})
	assert.Error(t, err)
}

func TestWriteError_UnexpectedErrorIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(zerolog.Nop()).WriteError(rec, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestWriteError_DuplicateIsConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(zerolog.Nop()).WriteError(rec,
		errs.NewDatabaseError("create", "contact submission", errors.New("UNIQUE constraint failed: contact_submissions.id")))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "contact submission already exists: Failed to create contact submission", decode[ErrorResponse](t, rec).Error)
}
