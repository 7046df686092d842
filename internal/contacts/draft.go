package contacts

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft is the in-progress contact record submitted by the form. Validation
// happens at submission time only; nothing here reaches the store until
// Validate returns no errors.
type Draft struct {
	Name    string   `json:"name" validate:"required"`
	Phone   string   `json:"phone" validate:"required,digits"`
	Email   string   `json:"email" validate:"required,loose_email"`
	Address string   `json:"address" validate:"required"`
	PhotoID string   `json:"photo_id" validate:"required"`
	Lat     *float64 `json:"lat" validate:"required"`
	Lng     *float64 `json:"lng" validate:"required"`
}

var (
	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)
	looseEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

var draftValidate = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// draftFieldErrors maps a violated field to the error key and message the
// form displays. Both coordinate fields collapse into the single location
// entry.
var draftFieldErrors = map[string]struct {
	key     string
	message string
}{
	"name":     {key: "name", message: "Name required"},
	"phone":    {key: "phone", message: "Phone must be numbers"},
	"email":    {key: "email", message: "Invalid email"},
	"address":  {key: "address", message: "Address required"},
	"photo_id": {key: "photo", message: "Photo required"},
	"lat":      {key: "location", message: "Location required"},
	"lng":      {key: "location", message: "Location required"},
}

// Validate evaluates every rule and returns all violations at once, keyed by
// form field. A nil map means the draft is submittable.
func (d Draft) Validate() map[string]string {
	err := draftValidate.Struct(d)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"form": "invalid contact data"}
	}

	errs := map[string]string{}
	for _, fieldErr := range fieldErrs {
		if mapped, known := draftFieldErrors[fieldErr.Field()]; known {
			errs[mapped.key] = mapped.message
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
