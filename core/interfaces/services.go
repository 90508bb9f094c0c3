// ABOUTME: Service interfaces for outbound integrations of the portfolio core
// ABOUTME: Lets the contact workflow depend on an email relay without knowing the provider

package interfaces

import "context"

// EmailMessage is the payload forwarded to the email relay
type EmailMessage struct {
	Name    string
	Email   string
	Message string
}

// EmailRelay forwards a contact message to a transactional email service.
// The only signal consumed is success or failure.
type EmailRelay interface {
	Send(ctx context.Context, msg EmailMessage) error
}
