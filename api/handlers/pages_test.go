package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishurahman616/portfolio/content"
	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/core/domain"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/workers"
	"github.com/mishurahman616/portfolio/pkg/featureflags"
	"github.com/mishurahman616/portfolio/web"
)

var pageTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type pageFixture struct {
	router  chi.Router
	syncer  *mockSyncer
	contact *mockContactService
	dataDir string
}

func newPageFixture(t *testing.T, state quest.State, flags featureflags.Manager) *pageFixture {
	t.Helper()

	profile, err := content.Embedded()
	require.NoError(t, err)
	rendered, err := content.NewMarkdown("").RenderProfile(profile)
	require.NoError(t, err)
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	f := &pageFixture{
		router:  chi.NewRouter(),
		syncer:  &mockSyncer{},
		contact: &mockContactService{},
		dataDir: t.TempDir(),
	}
	handler := NewPageHandler(renderer, PageConfig{
		Content:  rendered,
		BasePath: "/portfolio/",
		DataDir:  f.dataDir,
	}, &mockQuestService{state: state}, &mockStatsService{}, NewContactHandler(f.contact, flags), f.syncer)
	handler.now = func() time.Time { return pageTime }
	handler.Mount(f.router)
	return f
}

func (f *pageFixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func TestPageHandler_Home(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/?theme=light&section=skills", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc := parse(t, w)
	class, _ := doc.Find("html").Attr("class")
	assert.NotContains(t, class, "dark")
	assert.Equal(t, "skills", doc.Find("nav a.active").AttrOr("data-section", ""))
	assert.Equal(t, 1, doc.Find("form.contact-form").Length())
	assert.Contains(t, doc.Find("#quests").Text(), "Quest local-1")
}

func TestPageHandler_Group(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/quests/completed?theme=dark", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, parse(t, w).Find("#group-title").Text(), "Completed Quests")

	w = f.do(t, httptest.NewRequest(http.MethodGet, "/quests/archived", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPageHandler_Detail(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/quests/item/badge-7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	assert.Equal(t, "https://leetcode.com/mishurahman/", doc.Find("a.verify").AttrOr("href", ""))

	w = f.do(t, httptest.NewRequest(http.MethodGet, "/quests/item/local-404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPageHandler_SyncRedirectsToQuests(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())

	w := f.do(t, httptest.NewRequest(http.MethodPost, "/quests/sync?theme=light", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?theme=light#quests", w.Header().Get("Location"))
	assert.Equal(t, []string{workers.JobQuests}, f.syncer.called())
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPageHandler_ContactSuccess(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())
	f.contact.submitFunc = func(ctx context.Context, fields contact.Fields) contact.Result {
		return contact.Result{Status: contact.StatusSuccess, Notice: contact.SentMessage, DisplayUntil: pageTime.Add(5 * time.Second)}
	}

	w := f.do(t, postForm("/contact?theme=dark", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5; url=/?theme=dark#contact", w.Header().Get("Refresh"))

	doc := parse(t, w)
	assert.Equal(t, "success", doc.Find("form.contact-form").AttrOr("data-status", ""))
	assert.Equal(t, contact.SentMessage, strings.TrimSpace(doc.Find(".notice.success").Text()))
	assert.Equal(t, []contact.Fields{{Name: "Ada", Email: "ada@example.com", Message: "Hi"}}, f.contact.received)
}

func TestPageHandler_ContactLeavesRequestPath(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())
	f.contact.submitFunc = func(ctx context.Context, fields contact.Fields) contact.Result {
		return contact.Result{Status: contact.StatusFailure, Notice: contact.MissingFieldsMessage, Fields: fields}
	}

	req := postForm("/contact?theme=light", url.Values{"name": {"Ada"}})
	w := f.do(t, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/contact", req.URL.Path, "request logging reads the path after the handler")
}

func TestPageHandler_ContactFailureKeepsFields(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())
	f.contact.submitFunc = func(ctx context.Context, fields contact.Fields) contact.Result {
		return contact.Result{Status: contact.StatusFailure, Notice: contact.MissingFieldsMessage, Fields: fields}
	}

	w := f.do(t, postForm("/contact", url.Values{"name": {"Ada"}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Refresh"))

	doc := parse(t, w)
	assert.Equal(t, contact.MissingFieldsMessage, strings.TrimSpace(doc.Find(".notice.error").Text()))
	assert.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))
}

func TestPageHandler_ContactDisabled(t *testing.T) {
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.ContactForm: false})
	f := newPageFixture(t, readyState(), flags)

	w := f.do(t, postForm("/contact", url.Values{"name": {"Ada"}}))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 1, parse(t, w).Find(".form-disabled").Length())
	assert.Empty(t, f.contact.received)
}

func TestPageHandler_Challenges(t *testing.T) {
	f := newPageFixture(t, quest.State{Phase: quest.PhasePending, Board: domain.Board{}}, enabledFlags())
	doc := `{"challenges":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, ChallengeFile), []byte(doc), 0o644))

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/portfolio/data/challenges.json?t=123", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, doc, w.Body.String())
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
}

func TestPageHandler_Static(t *testing.T) {
	f := newPageFixture(t, readyState(), enabledFlags())

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "html.dark")
}
