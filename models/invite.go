package models

import "time"

// InviteRecord is the row kept in the mirror index for each created invite.
type InviteRecord struct {
	InviteID        string    `json:"invite_id"`
	PageTitle       string    `json:"page_title"`
	CoupleTitle     string    `json:"couple_title"`
	WeddingDateText string    `json:"wedding_date_text"`
	VenueName       string    `json:"venue_name"`
	PageURL         string    `json:"page_url"`
	CreatedAt       time.Time `json:"created_at"`
}
