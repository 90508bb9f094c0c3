// ABOUTME: Contact form state machine: idle, validating, sending, success, failure
// ABOUTME: Success decays back to idle after the display duration; failure stays until resubmission

package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

// Status is where a form is in its submit cycle
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSending    Status = "sending"
	StatusSuccess    Status = "success"
	StatusFailure    Status = "failure"
)

const (
	// MissingFieldsMessage is shown when any field is blank
	MissingFieldsMessage = "Please fill in all fields."

	// SendFailedMessage is shown when the relay rejects the message
	SendFailedMessage = "Failed to send message. Please try again."

	// SentMessage is shown while the success state is displayed
	SentMessage = "Message sent successfully!"

	// DefaultDisplayDuration is how long success is shown
	DefaultDisplayDuration = 5 * time.Second
)

// ErrBusy is returned when a submission is already in flight
var ErrBusy = errors.New("contact form is already sending")

var transitions = map[Status][]Status{
	StatusIdle:       {StatusValidating},
	StatusValidating: {StatusSending, StatusFailure},
	StatusSending:    {StatusSuccess, StatusFailure},
	StatusSuccess:    {StatusValidating, StatusIdle},
	StatusFailure:    {StatusValidating},
}

// Fields are the three values a visitor types in
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether every field has non-blank content
func (f Fields) Complete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Message) != ""
}

// Form holds one visitor's fields and submit status
type Form struct {
	mu        sync.Mutex
	fields    Fields
	status    Status
	notice    string
	settledAt time.Time
	trail     []Status

	now     func() time.Time
	display time.Duration
}

// NewForm creates an idle form. A nil clock uses time.Now.
func NewForm(now func() time.Time, display time.Duration) *Form {
	if now == nil {
		now = time.Now
	}
	if display <= 0 {
		display = DefaultDisplayDuration
	}
	return &Form{
		status:  StatusIdle,
		trail:   []Status{StatusIdle},
		now:     now,
		display: display,
	}
}

// Set replaces the field values, as typing would
func (f *Form) Set(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Fields returns the current field values
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Status returns the current status, reading idle once a success has been displayed long enough
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expire()
	return f.status
}

// Notice returns the message shown next to the form, if any
func (f *Form) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expire()
	return f.notice
}

// Trail returns every status the form has passed through
func (f *Form) Trail() []Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expire()
	return append([]Status(nil), f.trail...)
}

// DisplayUntil is when a success notice stops being shown
func (f *Form) DisplayUntil() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != StatusSuccess {
		return time.Time{}
	}
	return f.settledAt.Add(f.display)
}

// Submit validates the fields and hands them to the relay. The returned
// error is the relay error, if any; the form status carries the outcome.
func (f *Form) Submit(ctx context.Context, relay interfaces.EmailRelay) error {
	f.mu.Lock()
	f.expire()
	if f.status == StatusSending || f.status == StatusValidating {
		f.mu.Unlock()
		return ErrBusy
	}
	f.move(StatusValidating)
	if !f.fields.Complete() {
		f.move(StatusFailure)
		f.notice = MissingFieldsMessage
		f.mu.Unlock()
		return nil
	}
	f.move(StatusSending)
	f.notice = ""
	msg := interfaces.EmailMessage{
		Name:    strings.TrimSpace(f.fields.Name),
		Email:   strings.TrimSpace(f.fields.Email),
		Message: strings.TrimSpace(f.fields.Message),
	}
	f.mu.Unlock()

	var err error
	if relay == nil {
		err = errors.New("no email relay configured")
	} else {
		err = relay.Send(ctx, msg)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.move(StatusFailure)
		f.notice = SendFailedMessage
		return err
	}
	f.move(StatusSuccess)
	f.notice = SentMessage
	f.fields = Fields{}
	f.settledAt = f.now()
	return nil
}

// expire drops a success that has been shown for the display duration. Caller holds mu.
func (f *Form) expire() {
	if f.status == StatusSuccess && !f.now().Before(f.settledAt.Add(f.display)) {
		f.move(StatusIdle)
		f.notice = ""
	}
}

// move applies a transition. Caller holds mu.
func (f *Form) move(to Status) {
	for _, allowed := range transitions[f.status] {
		if allowed == to {
			f.status = to
			f.trail = append(f.trail, to)
			return
		}
	}
	panic(fmt.Sprintf("contact form: invalid transition %s -> %s", f.status, to))
}
