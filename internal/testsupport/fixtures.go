// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"mime"
	"mime/multipart"
	"testing"
)

// Upload is one file part of a multipart fixture.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// CompleteFields returns a submission with every required field set.
func CompleteFields() map[string]string {
	return map[string]string{
		"page_title":        "Chen & Yu Wedding",
		"couple_title":      "Chen & Yu",
		"cover_subtitle":    "We are getting married",
		"wedding_date_text": "2026/12/12 (Sat)",
		"wedding_time_text": "18:00",
		"venue_name":        "Grand Hotel Taipei",
		"story_subtitle":    "How it all began",
		"story_p1":          "We met in the library in 2015.",
		"story_p2":          "Ten years and two cats later, we said yes.",
		"venue_address":     "1 Zhongshan N. Rd, Taipei",
		"map_url":           "https://www.google.com/maps/search/?api=1&query=Grand+Hotel+Taipei",
		"tl1_time":          "18:00",
		"tl1_text":          "Guest arrival",
		"tl2_time":          "18:30",
		"tl2_text":          "Ceremony",
		"tl3_time":          "19:30",
		"tl3_text":          "Reception",
		"rsvp_url":          "https://forms.example.com/rsvp",
	}
}

// NamedPhotos returns one upload per named photo field.
func NamedPhotos() []Upload {
	return []Upload{
		{Field: "photo_cover", Filename: "cover.JPG", Content: []byte("cover-bytes")},
		{Field: "photo_story", Filename: "story.png", Content: []byte("story-bytes")},
		{Field: "photo_details", Filename: "details.webp", Content: []byte("details-bytes")},
		{Field: "photo_rsvp", Filename: "rsvp.jpeg", Content: []byte("rsvp-bytes")},
	}
}

// MultipartBody encodes values and uploads as multipart/form-data and
// returns the body with its content type.
func MultipartBody(t *testing.T, values map[string]string, uploads []Upload) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.Field, u.Filename)
		if err != nil {
			t.Fatalf("create form file %s: %v", u.Field, err)
		}
		if _, err := part.Write(u.Content); err != nil {
			t.Fatalf("write form file %s: %v", u.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// MultipartForm builds a parsed form so tests get file headers that can be
// opened.
func MultipartForm(t *testing.T, values map[string]string, uploads []Upload) *multipart.Form {
	t.Helper()

	body, contentType := MultipartBody(t, values, uploads)
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read multipart form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}
