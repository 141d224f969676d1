package fields

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
)

// ValidationError names the first offending field of a submission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Submission is a validated creation request.
type Submission struct {
	Fields InviteFields
	Photos []Photo
}

// Values returns the text fields keyed by schema key.
func (s *Submission) Values() map[string]string {
	return s.Fields.ToMap()
}

// Validator checks creation submissions.
type Validator struct {
	validate *validator.Validate
	defaults Defaults
}

// NewValidator creates a Validator filling blank optional fields from
// defaults.
func NewValidator(defaults Defaults) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonKey)
	return &Validator{validate: v, defaults: defaults}
}

// Validate normalizes raw and checks the uploaded photos. Text fields are
// checked before photos, each in declaration order, and the first failure is
// returned as a *ValidationError.
func (v *Validator) Validate(raw InviteFields, files map[string][]*multipart.FileHeader) (*Submission, error) {
	fields := raw
	fields.normalize(v.defaults)

	if err := v.validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
		}
		return nil, fmt.Errorf("validating fields: %w", err)
	}

	uploads, err := resolveUploads(files)
	if err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(Slots))
	for _, slot := range Slots {
		fh := uploads[slot]
		ext, err := checkPhoto(slot, fh)
		if err != nil {
			return nil, err
		}
		photos = append(photos, Photo{Slot: slot, File: fh, Ext: ext})
	}

	return &Submission{Fields: fields, Photos: photos}, nil
}

func reasonFor(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "missing required field"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
