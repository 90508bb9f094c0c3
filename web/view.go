// ABOUTME: View models for the server-rendered portfolio pages
// ABOUTME: Turns quest, stats and contact state into exactly what the templates print

package web

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mishurahman616/portfolio/content"
	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/core/domain"
	"github.com/mishurahman616/portfolio/core/navigator"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/theme"
	htmlutil "github.com/mishurahman616/portfolio/pkg/utils/html"
	timeutil "github.com/mishurahman616/portfolio/pkg/utils/time"
)

const (
	// PreviewSize is how many quests a group shows inline
	PreviewSize = 3

	// SkeletonCount is how many placeholder cards a pending group shows
	SkeletonCount = 3

	descriptionLength = 160
)

// Layout carries what every page needs around its content
type Layout struct {
	Title       string
	Description string
	Name        string
	Theme       theme.Mode
	Nav         []navigator.Link
	Menu        navigator.Menu
	Path        string
	Year        int
}

// RootClass is the class of the root element, derived from the theme
func (l Layout) RootClass() string {
	return l.Theme.RootClass()
}

// Href returns a same-site link that keeps the current theme
func (l Layout) Href(path string) string {
	return withTheme(path, l.Theme)
}

// ToggleHref links to the current page in the other theme
func (l Layout) ToggleHref() string {
	return withTheme(l.Path, l.Theme.Toggle())
}

// MenuHref links to the current page with the mobile menu toggled
func (l Layout) MenuHref() string {
	u, err := url.Parse(l.Path)
	if err != nil {
		return l.Path
	}
	q := u.Query()
	if l.Menu.Open {
		q.Del("menu")
	} else {
		q.Set("menu", "open")
	}
	q.Set(theme.QueryParam, l.Theme.String())
	u.RawQuery = q.Encode()
	return u.String()
}

func withTheme(path string, mode theme.Mode) string {
	fragment := ""
	if i := strings.Index(path, "#"); i >= 0 {
		path, fragment = path[:i], path[i:]
	}
	u, err := url.Parse(path)
	if err != nil {
		return path + fragment
	}
	q := u.Query()
	q.Set(theme.QueryParam, mode.String())
	u.RawQuery = q.Encode()
	return u.String() + fragment
}

// NewLayout builds the page frame for a request
func NewLayout(profile domain.Profile, mode theme.Mode, section string, menuOpen bool, path string, now time.Time) Layout {
	active := navigator.Normalize(section)
	menu := navigator.NewMenu()
	if menuOpen {
		menu = menu.Toggle()
	}
	menu.Active = active

	return Layout{
		Title:       profile.Name + " | Software Engineer",
		Description: htmlutil.Truncate(profile.Hero.Summary, descriptionLength),
		Name:        profile.Name,
		Theme:       mode,
		Nav:         navigator.Links(active),
		Menu:        menu,
		Path:        path,
		Year:        now.Year(),
	}
}

// QuestCard is one quest as printed on a card or detail page
type QuestCard struct {
	ID            string
	Title         string
	Description   string
	Details       string
	Type          string
	Color         string
	IconURL       string
	Status        string
	IsBadge       bool
	Percent       int
	CurrentDay    int
	TotalDays     int
	Streak        int
	ScheduledDate string
	CompletedDate string
	Href          string
}

// NewQuestCard flattens a quest for display
func NewQuestCard(q domain.Quest, mode theme.Mode) QuestCard {
	card := QuestCard{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Details:     q.Details,
		Type:        q.Type,
		Color:       string(q.Color),
		IconURL:     q.IconURL,
		Status:      string(q.Status()),
		IsBadge:     q.IsBadge(),
		Href:        withTheme("/quests/item/"+url.PathEscape(q.ID), mode),
	}
	if p, ok := q.Running(); ok {
		card.Percent = p.Percent()
		card.CurrentDay = p.CurrentDay
		card.TotalDays = p.TotalDays
		card.Streak = p.Streak
	}
	if u, ok := q.Upcoming(); ok {
		card.ScheduledDate = timeutil.Display(u.ScheduledDate)
	}
	if c, ok := q.Completed(); ok {
		card.CompletedDate = timeutil.Display(c.CompletionDate)
	}
	return card
}

// QuestGroup is one row of the quest log
type QuestGroup struct {
	Status    string
	Title     string
	Items     []QuestCard
	Total     int
	More      int
	Skeletons []int
	Href      string
}

var groupTitles = map[domain.QuestStatus]string{
	domain.StatusRunning:   "Active Quests",
	domain.StatusUpcoming:  "Upcoming Quests",
	domain.StatusCompleted: "Completed Quests",
}

// GroupOrder is the order the quest log rows are printed in
var GroupOrder = []domain.QuestStatus{domain.StatusRunning, domain.StatusUpcoming, domain.StatusCompleted}

// GroupTitle returns the heading of a quest group
func GroupTitle(status domain.QuestStatus) string {
	return groupTitles[status]
}

// NewQuestGroup builds a group row. limit <= 0 lists every quest.
func NewQuestGroup(status domain.QuestStatus, quests []domain.Quest, limit int, pending bool, mode theme.Mode) QuestGroup {
	group := QuestGroup{
		Status: string(status),
		Title:  groupTitles[status],
		Total:  len(quests),
		Href:   withTheme("/quests/"+string(status), mode),
	}
	if pending {
		group.Skeletons = make([]int, SkeletonCount)
		return group
	}

	shown := quests
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	group.Items = make([]QuestCard, 0, len(shown))
	for _, q := range shown {
		group.Items = append(group.Items, NewQuestCard(q, mode))
	}
	group.More = len(quests) - len(shown)
	return group
}

// QuestLog is the quest section of the home page
type QuestLog struct {
	Pending bool
	Failed  bool
	Error   string
	Groups  []QuestGroup
}

// NewQuestLog builds the quest section from the aggregator state
func NewQuestLog(state quest.State, mode theme.Mode) QuestLog {
	log := QuestLog{
		Pending: state.Phase == quest.PhasePending,
		Failed:  state.Phase == quest.PhaseFailed,
		Error:   state.Error,
	}
	for _, status := range GroupOrder {
		log.Groups = append(log.Groups, NewQuestGroup(status, state.Board.Group(status), PreviewSize, log.Pending, mode))
	}
	return log
}

// Stats is the problem solving section
type Stats struct {
	Loading         bool
	TotalSolved     string
	LeetCode        *domain.LeetCodeStats
	Codeforces      *domain.CodeforcesStats
	LeetCodeError   string
	CodeforcesError string
	LeetCodeURL     string
	CodeforcesURL   string
	Expertise       []string
}

// NewStats builds the problem solving section
func NewStats(snapshot domain.StatsSnapshot, profile domain.Profile) Stats {
	return Stats{
		Loading:         snapshot.Loading,
		TotalSolved:     snapshot.TotalSolvedLabel(),
		LeetCode:        snapshot.LeetCode,
		Codeforces:      snapshot.Codeforces,
		LeetCodeError:   snapshot.LeetCodeError,
		CodeforcesError: snapshot.CodeforcesError,
		LeetCodeURL:     profile.Links.LeetCode,
		CodeforcesURL:   profile.Links.Codeforces,
		Expertise:       profile.Expertise,
	}
}

// AcceptanceRate formats the LeetCode acceptance rate
func (s Stats) AcceptanceRate() string {
	if s.LeetCode == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%%", s.LeetCode.AcceptanceRate)
}

// ContactForm is the contact section form
type ContactForm struct {
	Enabled bool
	Status  string
	Notice  string
	Fields  contact.Fields
}

// NewContactForm builds the form from a submission result
func NewContactForm(enabled bool, result contact.Result) ContactForm {
	status := result.Status
	if status == "" {
		status = contact.StatusIdle
	}
	return ContactForm{
		Enabled: enabled,
		Status:  string(status),
		Notice:  result.Notice,
		Fields:  result.Fields,
	}
}

// Failed reports whether the form shows an error
func (c ContactForm) Failed() bool {
	return c.Status == string(contact.StatusFailure)
}

// Succeeded reports whether the form shows the sent notice
func (c ContactForm) Succeeded() bool {
	return c.Status == string(contact.StatusSuccess)
}

// HomePage is the single portfolio page
type HomePage struct {
	Layout
	Content  content.Rendered
	Sections []string
	Stats    Stats
	Quests   QuestLog
	Contact  ContactForm
}

// GroupPage lists every quest of one group
type GroupPage struct {
	Layout
	Group QuestGroup
}

// DetailPage shows a single quest
type DetailPage struct {
	Layout
	Quest      QuestCard
	ProfileURL string
}

// NewDetailPage builds the detail view, linking badges to the profile they were earned on
func NewDetailPage(layout Layout, q domain.Quest, profile domain.Profile) DetailPage {
	page := DetailPage{Layout: layout, Quest: NewQuestCard(q, layout.Theme)}
	if q.IsBadge() {
		page.ProfileURL = profile.Links.LeetCode
	}
	if text := htmlutil.StripHTML(q.Description); text != "" {
		page.Layout.Description = htmlutil.Truncate(text, descriptionLength)
	}
	page.Layout.Title = q.Title + " | " + profile.Name
	return page
}

// NewHomePage assembles the single page from each section's state
func NewHomePage(layout Layout, rendered content.Rendered, state quest.State, snapshot domain.StatsSnapshot, form ContactForm) HomePage {
	return HomePage{
		Layout:   layout,
		Content:  rendered,
		Sections: navigator.PageOrder,
		Stats:    NewStats(snapshot, rendered.Profile),
		Quests:   NewQuestLog(state, layout.Theme),
		Contact:  form,
	}
}

// NewGroupPage lists every quest of a group
func NewGroupPage(layout Layout, status domain.QuestStatus, state quest.State) GroupPage {
	group := NewQuestGroup(status, state.Board.Group(status), 0, state.Phase == quest.PhasePending, layout.Theme)
	layout.Title = group.Title + " | " + layout.Name
	return GroupPage{Layout: layout, Group: group}
}
