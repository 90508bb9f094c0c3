// ABOUTME: Request DTOs for the portfolio JSON endpoints
// ABOUTME: Contact fields are deliberately unconstrained; presence is checked by the form state machine

package requests

// ContactRequest is a contact form submission
type ContactRequest struct {
	Name    string `json:"name" required:"false" doc:"Sender name"`
	Email   string `json:"email" required:"false" doc:"Sender email, not format checked"`
	Message string `json:"message" required:"false" maxLength:"5000" doc:"Message body"`
}

// ObservationRequest is one section visibility report
type ObservationRequest struct {
	ID           string  `json:"id" doc:"Section id"`
	Intersecting bool    `json:"intersecting" doc:"Whether the section intersects the viewport band"`
	Top          float64 `json:"top" doc:"Distance of the section top from the viewport top"`
}

// NavigationRequest asks which section should be highlighted
type NavigationRequest struct {
	Current      string               `json:"current,omitempty" doc:"Currently active section"`
	Observations []ObservationRequest `json:"observations" maxItems:"50" doc:"Latest observer entries"`
}
