package aiclient

import (
	"fmt"
	"strings"

	"invitely/api-gateway/internal/fields"
	"invitely/api-gateway/models"
)

// DefaultQuestions seeds the prefill section of the creation form.
var DefaultQuestions = []string{
	"新人的名字是？",
	"婚禮日期是？",
	"婚禮開始時間（例如 18:00）？",
	"婚禮場地名稱是？",
	"你們是怎麼認識的？",
	"交往過程中印象最深刻的一件事？",
	"想對賓客說的一句話？",
	"RSVP 表單網址（沒有可留空）？",
}

// SystemPrompt returns the fixed instructions sent with every prefill request.
func SystemPrompt() string {
	var b strings.Builder

	b.WriteString("You write copy for a wedding invitation web page in Traditional Chinese.\n")
	b.WriteString("Fill the invitation fields from the couple's answers. Rules:\n")
	b.WriteString("1. story_subtitle, story_p1 and story_p2 are warm, first-person narrative written as the couple (\"we\"), based only on the answers.\n")
	b.WriteString("2. venue_address and map_url: fill them only if the address can be derived with confidence from the venue name. ")
	b.WriteString("map_url must then be a Google Maps search URL for that venue. Otherwise leave both as \"\". Never guess.\n")
	b.WriteString("3. Timeline: from the wedding start time, build three entries. ")
	b.WriteString("tl1 is guest arrival at the start time, tl2 is the ceremony about 30 minutes later, ")
	b.WriteString("tl3 is the reception 60 to 90 minutes after the ceremony starts. ")
	b.WriteString("Times use 24-hour HH:MM and must be strictly increasing (tl1_time < tl2_time < tl3_time). ")
	b.WriteString("If no start time is given, leave the timeline fields as \"\".\n")
	b.WriteString("4. rsvp_url: only a URL the couple gave explicitly. Never invent one; otherwise \"\".\n")
	b.WriteString("5. Any field you cannot fill from the answers is \"\".\n\n")

	b.WriteString("Respond with a single JSON object and nothing else. ")
	b.WriteString("It must contain exactly these keys, every value a string:\n")
	b.WriteString(strings.Join(fields.Keys(), ", "))
	b.WriteString("\n")

	return b.String()
}

// BuildPrompt lists the answers as numbered question/answer pairs.
func BuildPrompt(answers []models.Answer) string {
	var b strings.Builder
	b.WriteString("Answers from the couple:\n\n")
	for i, a := range answers {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", i+1, a.Q, a.A)
	}
	b.WriteString("\nReturn the JSON object now.")
	return b.String()
}
