// ABOUTME: Server-rendered page handlers for the portfolio site
// ABOUTME: Home, quest group and quest detail pages plus the form-encoded contact and retry actions

package handlers

import (
	"context"
	"math"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mishurahman616/portfolio/content"
	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/core/domain"
	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/interfaces"
	"github.com/mishurahman616/portfolio/core/navigator"
	"github.com/mishurahman616/portfolio/core/theme"
	"github.com/mishurahman616/portfolio/core/workers"
	"github.com/mishurahman616/portfolio/web"
)

// ChallengeFile is the local challenge document name inside the data dir
const ChallengeFile = "challenges.json"

// PageConfig holds what the page handler needs besides its services
type PageConfig struct {
	Content  content.Rendered
	BasePath string
	DataDir  string
	Logger   interfaces.Logger
}

// PageHandler serves the HTML site
type PageHandler struct {
	renderer *web.Renderer
	content  content.Rendered
	quests   QuestService
	stats    StatsService
	contact  *ContactHandler
	syncer   Syncer
	basePath string
	dataDir  string
	logger   interfaces.Logger
	now      func() time.Time
}

// NewPageHandler creates a new page handler
func NewPageHandler(renderer *web.Renderer, cfg PageConfig, quests QuestService, stats StatsService, contactHandler *ContactHandler, syncer Syncer) *PageHandler {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/"
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return &PageHandler{
		renderer: renderer,
		content:  cfg.Content,
		quests:   quests,
		stats:    stats,
		contact:  contactHandler,
		syncer:   syncer,
		basePath: basePath,
		dataDir:  cfg.DataDir,
		logger:   interfaces.LoggerOrNop(cfg.Logger),
		now:      time.Now,
	}
}

// Mount registers the page routes on a chi router
func (h *PageHandler) Mount(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/quests/{group}", h.Group)
	r.Get("/quests/item/{id}", h.Detail)
	r.Post("/quests/sync", h.Sync)
	r.Post("/contact", h.Contact)
	r.Get(path.Join(h.basePath, "data", ChallengeFile), h.Challenges)
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))
}

func (h *PageHandler) layout(r *http.Request, section string) web.Layout {
	return h.layoutAt(r, r.URL.Path, section)
}

// layoutAt builds the layout for a page shown at current, which may differ from the request path
func (h *PageHandler) layoutAt(r *http.Request, current, section string) web.Layout {
	q := r.URL.Query()
	if current == "" {
		current = "/"
	}
	return web.NewLayout(h.content.Profile, theme.Parse(q.Get(theme.QueryParam)), section, q.Get("menu") == "open", current, h.now())
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf strings.Builder
	if err := h.renderer.Render(&buf, page, data); err != nil {
		h.logger.Error("Failed to render page", map[string]interface{}{
			"page":  page,
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func (h *PageHandler) home(ctx context.Context, layout web.Layout, form web.ContactForm) web.HomePage {
	return web.NewHomePage(layout, h.content, h.quests.State(ctx), h.stats.Snapshot(ctx), form)
}

func (h *PageHandler) contactEnabled(ctx context.Context) bool {
	return h.contact != nil && h.contact.Enabled(ctx)
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	layout := h.layout(r, r.URL.Query().Get("section"))
	form := web.NewContactForm(h.contactEnabled(ctx), contact.Result{})
	h.render(w, r, http.StatusOK, web.PageHome, h.home(ctx, layout, form))
}

// Group handles GET /quests/{group}
func (h *PageHandler) Group(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseQuestStatus(chi.URLParam(r, "group"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	layout := h.layout(r, navigator.Quests)
	h.render(w, r, http.StatusOK, web.PageGroup, web.NewGroupPage(layout, status, h.quests.State(r.Context())))
}

// Detail handles GET /quests/item/{id}
func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	q, err := h.quests.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if coreerrors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	layout := h.layout(r, navigator.Quests)
	h.render(w, r, http.StatusOK, web.PageDetail, web.NewDetailPage(layout, q, h.content.Profile))
}

// Sync handles POST /quests/sync, the retry action on the failure banner
func (h *PageHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if err := h.syncer.RefreshNow(r.Context(), workers.JobQuests); err != nil {
		h.logger.Warn("Manual quest sync failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	mode := theme.Parse(r.URL.Query().Get(theme.QueryParam))
	http.Redirect(w, r, "/?"+theme.QueryParam+"="+mode.String()+"#"+navigator.Quests, http.StatusSeeOther)
}

// Contact handles the form-encoded POST /contact. The page is rendered
// with the outcome; a success returns to the idle form after the display time.
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	layout := h.layoutAt(r, "/", navigator.Contact)

	if !h.contactEnabled(ctx) {
		h.render(w, r, http.StatusServiceUnavailable, web.PageHome, h.home(ctx, layout, web.NewContactForm(false, contact.Result{})))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	result := h.contact.contact.Submit(ctx, contact.Fields{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	})

	if result.Status == contact.StatusSuccess && !result.DisplayUntil.IsZero() {
		seconds := int(math.Ceil(result.DisplayUntil.Sub(h.now()).Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Refresh", strconv.Itoa(seconds)+"; url="+layout.Href("/#"+navigator.Contact))
	}
	h.render(w, r, http.StatusOK, web.PageHome, h.home(ctx, layout, web.NewContactForm(true, result)))
}

// Challenges serves the local challenge document from the data dir
func (h *PageHandler) Challenges(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, filepath.Join(h.dataDir, ChallengeFile))
}
