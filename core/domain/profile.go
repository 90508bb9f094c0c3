// ABOUTME: Static portfolio content rendered into the hero, about, skills and history sections
// ABOUTME: Loaded once from embedded YAML and never mutated at runtime

package domain

// Profile holds every static section of the page
type Profile struct {
	Name       string       `yaml:"name" json:"name"`
	Hero       Hero         `yaml:"hero" json:"hero"`
	About      string       `yaml:"about" json:"about"`
	AboutCode  string       `yaml:"about_code" json:"aboutCode,omitempty"`
	Skills     []SkillGroup `yaml:"skills" json:"skills"`
	Experience []Experience `yaml:"experience" json:"experience"`
	Education  []Education  `yaml:"education" json:"education"`
	Projects   []Project    `yaml:"projects" json:"projects"`
	Contact    ContactInfo  `yaml:"contact" json:"contact"`
	Expertise  []string     `yaml:"expertise" json:"expertise"`
	Links      ProfileLinks `yaml:"links" json:"links"`
}

// ProfileLinks are the public coding profiles
type ProfileLinks struct {
	LeetCode   string `yaml:"leetcode" json:"leetcode"`
	Codeforces string `yaml:"codeforces" json:"codeforces"`
}

// Hero is the landing banner
type Hero struct {
	Availability string `yaml:"availability" json:"availability"`
	Headline     string `yaml:"headline" json:"headline"`
	Highlight    string `yaml:"highlight" json:"highlight"`
	Summary      string `yaml:"summary" json:"summary"`
	GitHub       string `yaml:"github" json:"github"`
	LinkedIn     string `yaml:"linkedin" json:"linkedin"`
}

// SkillGroup is one tech stack card
type SkillGroup struct {
	Title  string   `yaml:"title" json:"title"`
	Accent string   `yaml:"accent" json:"accent"`
	Items  []string `yaml:"items" json:"items"`
}

// Experience is one position on the timeline
type Experience struct {
	Company     string   `yaml:"company" json:"company"`
	Role        string   `yaml:"role" json:"role"`
	Period      string   `yaml:"period" json:"period"`
	Description []string `yaml:"description" json:"description"`
}

// Education is one degree card
type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Grade       string `yaml:"grade" json:"grade"`
	Period      string `yaml:"period" json:"period"`
}

// Project is one project card
type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	Impact      string   `yaml:"impact,omitempty" json:"impact,omitempty"`
	Link        string   `yaml:"link,omitempty" json:"link,omitempty"`
}

// ContactInfo is the left column of the contact section
type ContactInfo struct {
	Intro    string `yaml:"intro" json:"intro"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
}
