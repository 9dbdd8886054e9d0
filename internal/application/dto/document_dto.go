package dto

// DocumentClassificationDTO is the advisory output of the AI classifier.
// Confidence is 0-100. Never auto-applied; an admin confirms or overrides.
type DocumentClassificationDTO struct {
	Category   string `json:"category"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// DocumentReviewRequest is the body of POST /api/documents/:id/review.
// Category overrides the AI suggestion when set; Approve=false rejects.
type DocumentReviewRequest struct {
	Approve  bool   `json:"approve"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// DocumentResponse is a client document in responses.
type DocumentResponse struct {
	ID                string `json:"id"`
	ClientID          string `json:"client_id"`
	FileName          string `json:"file_name"`
	MimeType          string `json:"mime_type"`
	DocumentURL       string `json:"document_url"`
	Status            string `json:"status"`
	SuggestedCategory string `json:"suggested_category,omitempty"`
	Confidence        int    `json:"confidence,omitempty"`
	Reasoning         string `json:"reasoning,omitempty"`
	ConfirmedCategory string `json:"confirmed_category,omitempty"`
	ReviewNotes       string `json:"review_notes,omitempty"`
	CreatedAt         string `json:"created_at"`
}
