// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Keeps the quest variants, stats snapshot and form result out of the wire format

package mappers

import (
	"time"

	"github.com/mishurahman616/portfolio/api/dto/responses"
	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/core/domain"
	"github.com/mishurahman616/portfolio/core/navigator"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/theme"
)

// ToQuestResponse converts a domain Quest to a QuestResponse DTO
func ToQuestResponse(q domain.Quest) responses.QuestResponse {
	resp := responses.QuestResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Details:     q.Details,
		Status:      string(q.Status()),
		Type:        q.Type,
		Color:       string(q.Color),
		IconURL:     q.IconURL,
		Source:      string(q.Source),
	}
	if p, ok := q.Running(); ok {
		percent := p.Percent()
		resp.CurrentDay = &p.CurrentDay
		resp.TotalDays = &p.TotalDays
		resp.Streak = &p.Streak
		resp.Percent = &percent
	}
	if u, ok := q.Upcoming(); ok {
		resp.ScheduledDate = u.ScheduledDate
	}
	if c, ok := q.Completed(); ok {
		resp.CompletionDate = c.CompletionDate
	}
	return resp
}

func toQuestResponses(quests []domain.Quest) []responses.QuestResponse {
	out := make([]responses.QuestResponse, 0, len(quests))
	for _, q := range quests {
		out = append(out, ToQuestResponse(q))
	}
	return out
}

// ToQuestLogResponse converts the aggregator state
func ToQuestLogResponse(state quest.State) responses.QuestLogResponse {
	return responses.QuestLogResponse{
		Phase:    string(state.Phase),
		Error:    state.Error,
		Total:    state.Board.Total(),
		SyncedAt: optionalTime(state.SyncedAt),
		Board: responses.BoardResponse{
			Running:   toQuestResponses(state.Board.Running),
			Upcoming:  toQuestResponses(state.Board.Upcoming),
			Completed: toQuestResponses(state.Board.Completed),
		},
	}
}

// ToStatsResponse converts a stats snapshot
func ToStatsResponse(s domain.StatsSnapshot) responses.StatsResponse {
	resp := responses.StatsResponse{
		Loading:         s.Loading,
		TotalSolved:     s.TotalSolvedLabel(),
		LeetCodeError:   s.LeetCodeError,
		CodeforcesError: s.CodeforcesError,
		FetchedAt:       optionalTime(s.FetchedAt),
	}
	if lc := s.LeetCode; lc != nil {
		resp.LeetCode = &responses.LeetCodeResponse{
			TotalSolved:    lc.TotalSolved,
			TotalQuestions: lc.TotalQuestions,
			EasySolved:     lc.EasySolved,
			MediumSolved:   lc.MediumSolved,
			HardSolved:     lc.HardSolved,
			AcceptanceRate: lc.AcceptanceRate,
			Ranking:        lc.Ranking,
		}
	}
	if cf := s.Codeforces; cf != nil {
		resp.Codeforces = &responses.CodeforcesResponse{
			Handle:    cf.Handle,
			Rating:    cf.Rating,
			MaxRating: cf.MaxRating,
			Rank:      cf.Rank,
			MaxRank:   cf.MaxRank,
		}
	}
	return resp
}

// ToContactResponse converts a submission result
func ToContactResponse(r contact.Result) responses.ContactResponse {
	return responses.ContactResponse{
		Status: string(r.Status),
		Notice: r.Notice,
		Fields: responses.ContactFieldsResponse{
			Name:    r.Fields.Name,
			Email:   r.Fields.Email,
			Message: r.Fields.Message,
		},
		DisplayUntil: optionalTime(r.DisplayUntil),
	}
}

// ToNavigationResponse builds the nav for an active section
func ToNavigationResponse(active string) responses.NavigationResponse {
	links := navigator.Links(active)
	resp := responses.NavigationResponse{
		Active: navigator.Normalize(active),
		Links:  make([]responses.NavLinkResponse, 0, len(links)),
	}
	for _, l := range links {
		resp.Links = append(resp.Links, responses.NavLinkResponse{
			ID:     l.ID,
			Label:  l.Label,
			Href:   l.Href,
			Active: l.Active,
		})
	}
	return resp
}

// ToThemeResponse describes a mode
func ToThemeResponse(m theme.Mode) responses.ThemeResponse {
	return responses.ThemeResponse{
		Theme:     m.String(),
		Dark:      m.IsDark(),
		RootClass: m.RootClass(),
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
