package main

// affirmationRequest is the POST /api/affirmation body before validation.
// Details and language are optional; language defaults to "en".
type affirmationRequest struct {
	Name     string `json:"name"`
	Feeling  string `json:"feeling"`
	Details  string `json:"details"`
	Language string `json:"language"`
}

// affirmationResponse carries the single generated affirmation sentence.
type affirmationResponse struct {
	Affirmation string `json:"affirmation"`
}

// Error kinds shared by every error payload.
const (
	errKindValidation = "ValidationError"
	errKindRateLimit  = "RateLimitExceeded"
	errKindHTTP       = "HttpError"
	errKindInternal   = "InternalServerError"
)

// fieldDetail is one per-field entry in a validation error payload.
type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
