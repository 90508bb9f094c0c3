// ABOUTME: Quest domain model for coding challenges and earned badges shown in the quest log
// ABOUTME: Models the status-specific fields as one variant per status so they cannot drift apart

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestStatus is the lifecycle bucket a quest belongs to
type QuestStatus string

const (
	StatusRunning   QuestStatus = "running"
	StatusUpcoming  QuestStatus = "upcoming"
	StatusCompleted QuestStatus = "completed"
)

// ParseQuestStatus converts a raw status string into a QuestStatus
func ParseQuestStatus(raw string) (QuestStatus, error) {
	switch QuestStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusRunning:
		return StatusRunning, nil
	case StatusUpcoming:
		return StatusUpcoming, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown quest status %q", raw)
}

// Color is one of the fixed card accents
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
)

// ParseColor maps a raw color onto the palette, defaulting to blue
func ParseColor(raw string) Color {
	switch c := Color(strings.ToLower(strings.TrimSpace(raw))); c {
	case ColorBlue, ColorGreen, ColorOrange, ColorPurple:
		return c
	}
	return ColorBlue
}

// QuestSource identifies where a quest came from
type QuestSource string

const (
	SourceLocal QuestSource = "local"
	SourceBadge QuestSource = "badge"
)

// RunningProgress holds the fields of an in-progress quest
type RunningProgress struct {
	CurrentDay int
	TotalDays  int
	Streak     int
}

// Percent returns progress as a 0-100 value
func (p RunningProgress) Percent() int {
	if p.TotalDays <= 0 {
		return 0
	}
	pct := p.CurrentDay * 100 / p.TotalDays
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// UpcomingSchedule holds the fields of a quest that has not started
type UpcomingSchedule struct {
	ScheduledDate string
}

// CompletedRecord holds the fields of a finished quest
type CompletedRecord struct {
	CompletionDate string
}

// Quest is a tracked challenge or achievement.
// Exactly one of running, upcoming or completed is set.
type Quest struct {
	ID          string
	Title       string
	Description string
	Details     string
	Type        string
	Color       Color
	IconURL     string
	Source      QuestSource

	running   *RunningProgress
	upcoming  *UpcomingSchedule
	completed *CompletedRecord
}

// NewRunningQuest builds a quest in the running state
func NewRunningQuest(base Quest, progress RunningProgress) Quest {
	base.clearVariant()
	base.running = &progress
	return base
}

// NewUpcomingQuest builds a quest in the upcoming state
func NewUpcomingQuest(base Quest, schedule UpcomingSchedule) Quest {
	base.clearVariant()
	base.upcoming = &schedule
	return base
}

// NewCompletedQuest builds a quest in the completed state
func NewCompletedQuest(base Quest, record CompletedRecord) Quest {
	base.clearVariant()
	base.completed = &record
	return base
}

func (q *Quest) clearVariant() {
	q.running = nil
	q.upcoming = nil
	q.completed = nil
}

// Status returns the status implied by the set variant
func (q Quest) Status() QuestStatus {
	switch {
	case q.running != nil:
		return StatusRunning
	case q.upcoming != nil:
		return StatusUpcoming
	case q.completed != nil:
		return StatusCompleted
	}
	return ""
}

// Running returns the running variant
func (q Quest) Running() (RunningProgress, bool) {
	if q.running == nil {
		return RunningProgress{}, false
	}
	return *q.running, true
}

// Upcoming returns the upcoming variant
func (q Quest) Upcoming() (UpcomingSchedule, bool) {
	if q.upcoming == nil {
		return UpcomingSchedule{}, false
	}
	return *q.upcoming, true
}

// Completed returns the completed variant
func (q Quest) Completed() (CompletedRecord, bool) {
	if q.completed == nil {
		return CompletedRecord{}, false
	}
	return *q.completed, true
}

// CompletionDate is a convenience accessor, empty unless completed
func (q Quest) CompletionDate() string {
	if q.completed == nil {
		return ""
	}
	return q.completed.CompletionDate
}

// IsBadge reports whether the quest was ingested from the badge API
func (q Quest) IsBadge() bool {
	return q.Source == SourceBadge
}

// Validate checks the quest has an identity and exactly one variant
func (q Quest) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("quest id is required")
	}
	set := 0
	for _, ok := range []bool{q.running != nil, q.upcoming != nil, q.completed != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("quest %s must have exactly one status, has %d", q.ID, set)
	}
	return nil
}

// questJSON is the flattened wire form
type questJSON struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Details        string      `json:"details,omitempty"`
	Status         QuestStatus `json:"status"`
	Type           string      `json:"type,omitempty"`
	Color          Color       `json:"color"`
	IconURL        string      `json:"iconUrl,omitempty"`
	Source         QuestSource `json:"source"`
	CurrentDay     *int        `json:"currentDay,omitempty"`
	TotalDays      *int        `json:"totalDays,omitempty"`
	Streak         *int        `json:"streak,omitempty"`
	ScheduledDate  string      `json:"scheduledDate,omitempty"`
	CompletionDate string      `json:"completionDate,omitempty"`
}

// MarshalJSON flattens the variant next to a status discriminator
func (q Quest) MarshalJSON() ([]byte, error) {
	out := questJSON{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Details:     q.Details,
		Status:      q.Status(),
		Type:        q.Type,
		Color:       q.Color,
		IconURL:     q.IconURL,
		Source:      q.Source,
	}
	switch {
	case q.running != nil:
		out.CurrentDay = &q.running.CurrentDay
		out.TotalDays = &q.running.TotalDays
		out.Streak = &q.running.Streak
	case q.upcoming != nil:
		out.ScheduledDate = q.upcoming.ScheduledDate
	case q.completed != nil:
		out.CompletionDate = q.completed.CompletionDate
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the variant selected by the status discriminator
func (q *Quest) UnmarshalJSON(data []byte) error {
	var in questJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	status, err := ParseQuestStatus(string(in.Status))
	if err != nil {
		return err
	}
	base := Quest{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Details:     in.Details,
		Type:        in.Type,
		Color:       ParseColor(string(in.Color)),
		IconURL:     in.IconURL,
		Source:      in.Source,
	}
	switch status {
	case StatusRunning:
		if in.ScheduledDate != "" || in.CompletionDate != "" {
			return fmt.Errorf("running quest %s carries fields of another status", in.ID)
		}
		*q = NewRunningQuest(base, RunningProgress{
			CurrentDay: deref(in.CurrentDay),
			TotalDays:  deref(in.TotalDays),
			Streak:     deref(in.Streak),
		})
	case StatusUpcoming:
		if in.CompletionDate != "" || in.CurrentDay != nil {
			return fmt.Errorf("upcoming quest %s carries fields of another status", in.ID)
		}
		*q = NewUpcomingQuest(base, UpcomingSchedule{ScheduledDate: in.ScheduledDate})
	case StatusCompleted:
		if in.ScheduledDate != "" || in.CurrentDay != nil {
			return fmt.Errorf("completed quest %s carries fields of another status", in.ID)
		}
		*q = NewCompletedQuest(base, CompletedRecord{CompletionDate: in.CompletionDate})
	}
	return nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Board is the quest log partitioned by status
type Board struct {
	Running   []Quest `json:"running"`
	Upcoming  []Quest `json:"upcoming"`
	Completed []Quest `json:"completed"`
}

// Total returns the number of quests across all groups
func (b Board) Total() int {
	return len(b.Running) + len(b.Upcoming) + len(b.Completed)
}

// Group returns the quests for a status
func (b Board) Group(status QuestStatus) []Quest {
	switch status {
	case StatusRunning:
		return b.Running
	case StatusUpcoming:
		return b.Upcoming
	case StatusCompleted:
		return b.Completed
	}
	return nil
}

// Find looks a quest up by id across all groups
func (b Board) Find(id string) (Quest, bool) {
	for _, group := range [][]Quest{b.Running, b.Upcoming, b.Completed} {
		for _, q := range group {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Quest{}, false
}
