// ABOUTME: Contact service runs one form submission per request against the email relay
// ABOUTME: Logs outcomes without message bodies

package contact

import (
	"context"
	"time"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

// Result is the renderable outcome of a submission
type Result struct {
	Status       Status    `json:"status"`
	Notice       string    `json:"notice,omitempty"`
	Fields       Fields    `json:"fields"`
	DisplayUntil time.Time `json:"displayUntil,omitempty"`
}

// Service submits contact forms
type Service struct {
	deps    interfaces.Dependencies
	relay   interfaces.EmailRelay
	display time.Duration
	now     func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(deps interfaces.Dependencies, relay interfaces.EmailRelay, display time.Duration) *Service {
	return &Service{
		deps:    deps,
		relay:   relay,
		display: display,
		now:     time.Now,
	}
}

// NewForm returns an idle form sharing the service clock
func (s *Service) NewForm() *Form {
	return NewForm(s.now, s.display)
}

// Submit runs a fresh form through validation and the relay
func (s *Service) Submit(ctx context.Context, fields Fields) Result {
	logger := interfaces.LoggerOrNop(s.deps.Logger)

	form := s.NewForm()
	form.Set(fields)
	if err := form.Submit(ctx, s.relay); err != nil {
		logger.Warn("Contact message not sent", map[string]interface{}{
			"error": err.Error(),
		})
	}

	result := Result{
		Status:       form.Status(),
		Notice:       form.Notice(),
		Fields:       form.Fields(),
		DisplayUntil: form.DisplayUntil(),
	}
	switch result.Status {
	case StatusSuccess:
		logger.Info("Contact message sent", map[string]interface{}{
			"display_until": result.DisplayUntil,
		})
	case StatusFailure:
		logger.Debug("Contact submission rejected", map[string]interface{}{
			"notice": result.Notice,
		})
	}
	return result
}
