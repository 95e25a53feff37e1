package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const (
	MsgMissingFields = "Please fill in all required fields."
	MsgInvalidChoice = "Please choose a category and priority from the list."
	MsgSubmitFailed  = "Failed to submit complaint. Please try again."
)

// FormFields are the inputs of the creation form.
type FormFields struct {
	Title       string          `json:"title" validate:"required"`
	Category    domain.Category `json:"category" validate:"required,complaint_category"`
	Priority    domain.Priority `json:"priority" validate:"complaint_priority"`
	Description string          `json:"description" validate:"required"`
}

// FormState is what the creation form renders.
type FormState struct {
	Fields     FormFields `json:"fields"`
	Error      string     `json:"error,omitempty"`
	Submitting bool       `json:"submitting"`
	Redirect   string     `json:"redirect,omitempty"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("complaint_category", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("complaint_priority", func(fl validator.FieldLevel) bool {
		return domain.Priority(fl.Field().String()).Valid()
	})
	return v
}

// ComplaintForm is the new-complaint form.
type ComplaintForm struct {
	src Source

	fields     FormFields
	errMsg     string
	submitting bool
	redirect   string
}

func NewComplaintForm(src Source) *ComplaintForm {
	return &ComplaintForm{
		src:    src,
		fields: FormFields{Priority: domain.PriorityMedium},
	}
}

// SetFields replaces the form inputs. An empty priority becomes Medium.
func (f *ComplaintForm) SetFields(in FormFields) {
	in.Priority = domain.NormalizePriority(in.Priority)
	f.fields = in
}

func (f *ComplaintForm) Fields() FormFields { return f.fields }

// Submit validates the form and, when valid, creates the complaint. Invalid
// input never reaches the backend. On success Redirect points at the list.
func (f *ComplaintForm) Submit(ctx context.Context) error {
	f.errMsg = ""
	if err := formValidator.Struct(f.fields); err != nil {
		f.errMsg = validationMessage(err)
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	f.submitting = true
	err := f.src.Create(ctx, domain.NewComplaint{
		Title:       f.fields.Title,
		Category:    f.fields.Category,
		Description: f.fields.Description,
		Priority:    f.fields.Priority,
	})
	f.submitting = false
	if err != nil {
		f.errMsg = MsgSubmitFailed
		return err
	}
	f.redirect = domain.PathComplaints
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MsgMissingFields
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return MsgMissingFields
		}
	}
	return MsgInvalidChoice
}

// Error is the inline error message, if any.
func (f *ComplaintForm) Error() string { return f.errMsg }

// Redirect is set once the complaint was created.
func (f *ComplaintForm) Redirect() string { return f.redirect }

func (f *ComplaintForm) State() FormState {
	return FormState{
		Fields:     f.fields,
		Error:      f.errMsg,
		Submitting: f.submitting,
		Redirect:   f.redirect,
	}
}
