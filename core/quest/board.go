// ABOUTME: Merge, categorize and ordering rules for the quest log
// ABOUTME: Completed quests are ranked by title keywords, then by completion date

package quest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mishurahman616/portfolio/core/domain"
)

// Priority ranks a completed quest by the keywords in its title
func Priority(title string) int {
	switch {
	case strings.Contains(title, "Annual Badge"):
		return 2
	case strings.Contains(title, "Daily Coding Challenge"):
		return 1
	}
	return 0
}

// SortCompleted orders completed quests by priority, then completion date.
// Dates are compared as strings, newest first for ISO dates.
func SortCompleted(quests []domain.Quest) {
	sort.SliceStable(quests, func(i, j int) bool {
		pi, pj := Priority(quests[i].Title), Priority(quests[j].Title)
		if pi != pj {
			return pi > pj
		}
		return quests[i].CompletionDate() > quests[j].CompletionDate()
	})
}

// Categorize partitions quests by status. Running and upcoming keep their
// relative order; completed is re-sorted.
func Categorize(quests []domain.Quest) domain.Board {
	board := domain.Board{
		Running:   []domain.Quest{},
		Upcoming:  []domain.Quest{},
		Completed: []domain.Quest{},
	}
	for _, q := range quests {
		switch q.Status() {
		case domain.StatusRunning:
			board.Running = append(board.Running, q)
		case domain.StatusUpcoming:
			board.Upcoming = append(board.Upcoming, q)
		case domain.StatusCompleted:
			board.Completed = append(board.Completed, q)
		}
	}
	SortCompleted(board.Completed)
	return board
}

// Merge concatenates local and badge quests and categorizes them
func Merge(local, badges []domain.Quest) domain.Board {
	all := make([]domain.Quest, 0, len(local)+len(badges))
	all = append(all, local...)
	all = append(all, badges...)
	return Categorize(all)
}

// recordToQuest converts one local record into a quest
func recordToQuest(r challengeRecord, index int) (domain.Quest, error) {
	status, err := domain.ParseQuestStatus(r.Status)
	if err != nil {
		return domain.Quest{}, err
	}

	id := recordID(r.ID)
	if id == "" {
		id = fmt.Sprintf("%d", index)
	}

	base := domain.Quest{
		ID:          "local-" + id,
		Title:       r.Title,
		Description: r.Description,
		Details:     r.Details,
		Type:        r.Type,
		Color:       domain.ParseColor(r.Color),
		IconURL:     r.ImageURL,
		Source:      domain.SourceLocal,
	}

	switch status {
	case domain.StatusRunning:
		return domain.NewRunningQuest(base, domain.RunningProgress{
			CurrentDay: r.CurrentDay,
			TotalDays:  r.TotalDays,
			Streak:     r.Streak,
		}), nil
	case domain.StatusUpcoming:
		return domain.NewUpcomingQuest(base, domain.UpcomingSchedule{ScheduledDate: r.ScheduledDate}), nil
	default:
		return domain.NewCompletedQuest(base, domain.CompletedRecord{CompletionDate: r.CompletionDate}), nil
	}
}

func recordID(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
