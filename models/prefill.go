package models

// Answer is one free-text question/answer pair sent to the prefill assistant.
type Answer struct {
	Q string `json:"q" validate:"max=500"`
	A string `json:"a" validate:"max=4000"`
}

// PrefillRequest is the body of POST /api/prefill.
type PrefillRequest struct {
	Answers []Answer `json:"answers" validate:"required,min=1,max=50,dive"`
}
