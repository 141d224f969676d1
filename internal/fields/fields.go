// Package fields defines the invitation field schema and validates one
// creation submission against it.
package fields

import (
	"reflect"
	"strings"
)

// InviteFields is the textual part of an invite. Each field's json/form tag
// is its schema key. Fields tagged `validate:"required"` must be supplied;
// the rest fall back to a default from Defaults. Fields tagged
// `invite:"multiline"` are paragraphs and get a textarea on the form.
type InviteFields struct {
	// page meta / topbar
	PageTitle      string `json:"page_title" form:"page_title" validate:"required"`
	BrandTitle     string `json:"brand_title" form:"brand_title"`
	BrandSub       string `json:"brand_sub" form:"brand_sub"`
	RSVPButtonText string `json:"rsvp_button_text" form:"rsvp_button_text"`

	// cover
	CoupleTitle     string `json:"couple_title" form:"couple_title" validate:"required"`
	CoverSubtitle   string `json:"cover_subtitle" form:"cover_subtitle" validate:"required"`
	WeddingDateText string `json:"wedding_date_text" form:"wedding_date_text" validate:"required"`
	WeddingTimeText string `json:"wedding_time_text" form:"wedding_time_text" validate:"required"`
	VenueName       string `json:"venue_name" form:"venue_name" validate:"required"`

	// story
	StoryTitle    string `json:"story_title" form:"story_title"`
	StorySubtitle string `json:"story_subtitle" form:"story_subtitle" validate:"required"`
	StoryP1       string `json:"story_p1" form:"story_p1" validate:"required" invite:"multiline"`
	StoryP2       string `json:"story_p2" form:"story_p2" validate:"required" invite:"multiline"`

	// details
	DetailsTitle    string `json:"details_title" form:"details_title"`
	DetailsSubtitle string `json:"details_subtitle" form:"details_subtitle"`
	VenueAddress    string `json:"venue_address" form:"venue_address" validate:"required"`
	MapURL          string `json:"map_url" form:"map_url" validate:"required"`
	DetailsNote     string `json:"details_note" form:"details_note" invite:"multiline"`

	// timeline
	TL1Time string `json:"tl1_time" form:"tl1_time" validate:"required"`
	TL1Text string `json:"tl1_text" form:"tl1_text" validate:"required"`
	TL2Time string `json:"tl2_time" form:"tl2_time" validate:"required"`
	TL2Text string `json:"tl2_text" form:"tl2_text" validate:"required"`
	TL3Time string `json:"tl3_time" form:"tl3_time" validate:"required"`
	TL3Text string `json:"tl3_text" form:"tl3_text" validate:"required"`

	// rsvp
	RSVPTitle    string `json:"rsvp_title" form:"rsvp_title"`
	RSVPSubtitle string `json:"rsvp_subtitle" form:"rsvp_subtitle"`
	RSVPStep1    string `json:"rsvp_step1" form:"rsvp_step1"`
	RSVPStep2    string `json:"rsvp_step2" form:"rsvp_step2"`
	RSVPStep3    string `json:"rsvp_step3" form:"rsvp_step3"`
	RSVPURL      string `json:"rsvp_url" form:"rsvp_url" validate:"required"`
	RSVPHint     string `json:"rsvp_hint" form:"rsvp_hint"`

	// buttons
	BtnViewDetails string `json:"btn_view_details" form:"btn_view_details"`
	BtnOurStory    string `json:"btn_our_story" form:"btn_our_story"`
	BtnNextDetails string `json:"btn_next_details" form:"btn_next_details"`
	BtnBackCover   string `json:"btn_back_cover" form:"btn_back_cover"`
	BtnOpenMap     string `json:"btn_open_map" form:"btn_open_map"`
	BtnNextRSVP    string `json:"btn_next_rsvp" form:"btn_next_rsvp"`
	BtnOpenRSVP    string `json:"btn_open_rsvp" form:"btn_open_rsvp"`
	BtnBackCover2  string `json:"btn_back_cover_2" form:"btn_back_cover_2"`
}

// Field describes one schema key.
type Field struct {
	Key       string
	Required  bool
	Multiline bool
	index     int
}

var schema = buildSchema()

func buildSchema() []Field {
	t := reflect.TypeOf(InviteFields{})
	out := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		out = append(out, Field{
			Key:       jsonKey(sf),
			Required:  strings.Contains(sf.Tag.Get("validate"), "required"),
			Multiline: sf.Tag.Get("invite") == "multiline",
			index:     i,
		})
	}
	return out
}

func jsonKey(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

// Schema returns every field in declaration order.
func Schema() []Field {
	out := make([]Field, len(schema))
	copy(out, schema)
	return out
}

// Keys returns the schema keys in declaration order.
func Keys() []string {
	keys := make([]string, len(schema))
	for i, f := range schema {
		keys[i] = f.Key
	}
	return keys
}

// Lookup returns the field for key.
func Lookup(key string) (Field, bool) {
	for _, f := range schema {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// IsMultiline reports whether key holds a paragraph.
func IsMultiline(key string) bool {
	f, ok := Lookup(key)
	return ok && f.Multiline
}

// ToMap returns the fields keyed by schema key.
func (f InviteFields) ToMap() map[string]string {
	v := reflect.ValueOf(f)
	out := make(map[string]string, len(schema))
	for _, field := range schema {
		out[field.Key] = v.Field(field.index).String()
	}
	return out
}

// FromMap builds InviteFields from a key/value mapping. Unknown keys are
// ignored.
func FromMap(m map[string]string) InviteFields {
	var f InviteFields
	v := reflect.ValueOf(&f).Elem()
	for _, field := range schema {
		if val, ok := m[field.Key]; ok {
			v.Field(field.index).SetString(val)
		}
	}
	return f
}

// normalize trims every field and fills blank optional fields from defaults.
func (f *InviteFields) normalize(defaults Defaults) {
	v := reflect.ValueOf(f).Elem()
	for _, field := range schema {
		fv := v.Field(field.index)
		val := strings.TrimSpace(fv.String())
		if val == "" && !field.Required {
			val = defaults[field.Key]
		}
		fv.SetString(val)
	}
}
