// ABOUTME: Contact handler for the Huma API
// ABOUTME: The submission outcome is always in the body; only a disabled form is an HTTP error

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mishurahman616/portfolio/api/dto/mappers"
	"github.com/mishurahman616/portfolio/api/dto/requests"
	"github.com/mishurahman616/portfolio/api/dto/responses"
	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/pkg/featureflags"
)

// ContactService defines the methods needed from the contact service
type ContactService interface {
	Submit(ctx context.Context, fields contact.Fields) contact.Result
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	contact ContactService
	flags   featureflags.Manager
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service ContactService, flags featureflags.Manager) *ContactHandler {
	return &ContactHandler{
		contact: service,
		flags:   flags,
	}
}

// Enabled reports whether the form accepts submissions
func (h *ContactHandler) Enabled(ctx context.Context) bool {
	if h.contact == nil {
		return false
	}
	return h.flags == nil || h.flags.IsEnabled(ctx, featureflags.ContactForm)
}

// RegisterRoutes registers contact routes
func (h *ContactHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "submitContact",
		Method:      http.MethodPost,
		Path:        "/api/contact",
		Summary:     "Send a contact message",
		Description: "Validates that every field is present and forwards the message to the email relay",
		Tags:        []string{"Contact"},
	}, h.Submit)
}

// ContactInput is a contact submission
type ContactInput struct {
	Body requests.ContactRequest
}

// ContactOutput is the form state after the submission
type ContactOutput struct {
	Body responses.ContactResponse
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(ctx context.Context, input *ContactInput) (*ContactOutput, error) {
	if !h.Enabled(ctx) {
		return nil, huma.Error503ServiceUnavailable("Contact form is disabled")
	}
	result := h.contact.Submit(ctx, contact.Fields{
		Name:    input.Body.Name,
		Email:   input.Body.Email,
		Message: input.Body.Message,
	})
	return &ContactOutput{Body: mappers.ToContactResponse(result)}, nil
}
