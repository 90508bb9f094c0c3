// ABOUTME: Response DTOs for the portfolio JSON endpoints
// ABOUTME: Quests are flattened so each status carries only its own fields

package responses

import "time"

// QuestResponse is one quest in the API format
type QuestResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Details        string `json:"details,omitempty"`
	Status         string `json:"status" enum:"running,upcoming,completed"`
	Type           string `json:"type,omitempty"`
	Color          string `json:"color" enum:"blue,green,orange,purple"`
	IconURL        string `json:"iconUrl,omitempty"`
	Source         string `json:"source" enum:"local,badge"`
	CurrentDay     *int   `json:"currentDay,omitempty"`
	TotalDays      *int   `json:"totalDays,omitempty"`
	Streak         *int   `json:"streak,omitempty"`
	Percent        *int   `json:"percent,omitempty"`
	ScheduledDate  string `json:"scheduledDate,omitempty"`
	CompletionDate string `json:"completionDate,omitempty"`
}

// BoardResponse is the quest log partitioned by status
type BoardResponse struct {
	Running   []QuestResponse `json:"running"`
	Upcoming  []QuestResponse `json:"upcoming"`
	Completed []QuestResponse `json:"completed"`
}

// QuestLogResponse is the quest log with its load phase
type QuestLogResponse struct {
	Phase    string        `json:"phase" enum:"pending,ready,failed"`
	Error    string        `json:"error,omitempty"`
	Total    int           `json:"total"`
	SyncedAt *time.Time    `json:"syncedAt,omitempty"`
	Board    BoardResponse `json:"board"`
}

// LeetCodeResponse is the LeetCode card
type LeetCodeResponse struct {
	TotalSolved    int     `json:"totalSolved"`
	TotalQuestions int     `json:"totalQuestions"`
	EasySolved     int     `json:"easySolved"`
	MediumSolved   int     `json:"mediumSolved"`
	HardSolved     int     `json:"hardSolved"`
	AcceptanceRate float64 `json:"acceptanceRate"`
	Ranking        int     `json:"ranking"`
}

// CodeforcesResponse is the Codeforces card
type CodeforcesResponse struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
	MaxRank   string `json:"maxRank"`
}

// StatsResponse is the problem solving section
type StatsResponse struct {
	Loading         bool                `json:"loading"`
	TotalSolved     string              `json:"totalSolved" doc:"Milestone label shown on the summary card"`
	LeetCode        *LeetCodeResponse   `json:"leetcode,omitempty"`
	Codeforces      *CodeforcesResponse `json:"codeforces,omitempty"`
	LeetCodeError   string              `json:"leetcodeError,omitempty"`
	CodeforcesError string              `json:"codeforcesError,omitempty"`
	FetchedAt       *time.Time          `json:"fetchedAt,omitempty"`
}

// ContactFieldsResponse echoes the form fields after a submission
type ContactFieldsResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the outcome of a submission
type ContactResponse struct {
	Status       string                `json:"status" enum:"idle,validating,sending,success,failure"`
	Notice       string                `json:"notice,omitempty"`
	Fields       ContactFieldsResponse `json:"fields"`
	DisplayUntil *time.Time            `json:"displayUntil,omitempty" doc:"When a success notice returns to idle"`
}

// NavLinkResponse is one navigation link
type NavLinkResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// NavigationResponse is the resolved active section
type NavigationResponse struct {
	Active string            `json:"active"`
	Links  []NavLinkResponse `json:"links"`
}

// ThemeResponse describes a theme mode
type ThemeResponse struct {
	Theme     string `json:"theme" enum:"dark,light"`
	Dark      bool   `json:"dark"`
	RootClass string `json:"rootClass"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status"`
}
