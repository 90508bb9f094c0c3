// ABOUTME: Section navigator resolves the active page section from viewport observations
// ABOUTME: Also holds the mobile menu state; both are plain values owned by the caller

package navigator

// Section ids in observation order
const (
	Hero         = "hero"
	About        = "about"
	Experience   = "experience"
	Projects     = "projects"
	Skills       = "skills"
	Education    = "education"
	Achievements = "achievements"
	Quests       = "quests"
	Contact      = "contact"
)

// Default is the active section before anything is observed
const Default = Hero

// Sections lists every observed section
var Sections = []string{Hero, About, Experience, Projects, Skills, Education, Achievements, Quests, Contact}

// PageOrder is the order the sections appear in the document
var PageOrder = []string{Hero, About, Skills, Achievements, Quests, Experience, Education, Projects, Contact}

// Viewport band used by the client observer: a section counts as intersecting
// while it crosses the strip between 20% from the top and 30% from the top.
const (
	BandTopMargin    = "-20%"
	BandBottomMargin = "-70%"
)

// Link is one navigation entry
type Link struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

var labels = map[string]string{
	About:        "About",
	Experience:   "Experience",
	Projects:     "Projects",
	Skills:       "Skills",
	Education:    "Education",
	Achievements: "Achievements",
	Quests:       "Quests",
	Contact:      "Contact",
}

// Known reports whether id is an observed section
func Known(id string) bool {
	for _, s := range Sections {
		if s == id {
			return true
		}
	}
	return false
}

// Normalize returns id when it is a known section, otherwise the default
func Normalize(id string) string {
	if Known(id) {
		return id
	}
	return Default
}

// Links returns the nav entries, every section except hero, marking active
func Links(active string) []Link {
	links := make([]Link, 0, len(Sections)-1)
	for _, id := range Sections {
		if id == Hero {
			continue
		}
		links = append(links, Link{
			ID:     id,
			Label:  labels[id],
			Href:   "#" + id,
			Active: id == active,
		})
	}
	return links
}

// Observation is what the client observer reported for one section
type Observation struct {
	ID           string  `json:"id"`
	Intersecting bool    `json:"intersecting"`
	Top          float64 `json:"top"`
}

// Resolve picks the active section. Among intersecting known sections the
// topmost wins, ties going to the one earlier in the page. Nothing
// intersecting keeps current.
func Resolve(current string, observations []Observation) string {
	best := -1
	for i, o := range observations {
		if !o.Intersecting || !Known(o.ID) {
			continue
		}
		if best < 0 || above(o, observations[best]) {
			best = i
		}
	}
	if best < 0 {
		return Normalize(current)
	}
	return observations[best].ID
}

func above(a, b Observation) bool {
	if a.Top != b.Top {
		return a.Top < b.Top
	}
	return pagePosition(a.ID) < pagePosition(b.ID)
}

func pagePosition(id string) int {
	for i, s := range PageOrder {
		if s == id {
			return i
		}
	}
	return len(PageOrder)
}

// Menu is the mobile navigation menu
type Menu struct {
	Open   bool   `json:"open"`
	Active string `json:"active"`
}

// NewMenu returns a closed menu with the default section active
func NewMenu() Menu {
	return Menu{Active: Default}
}

// Toggle opens or closes the menu
func (m Menu) Toggle() Menu {
	m.Open = !m.Open
	return m
}

// Select activates a section and closes the menu. Unknown ids only close it.
func (m Menu) Select(id string) Menu {
	if Known(id) {
		m.Active = id
	}
	m.Open = false
	return m
}
