// Package forms declares the HTML form schemas and validates submissions
// with a shared go-playground/validator instance.
package forms

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	MinRating = 0.0
	MaxRating = 10.0
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Errors maps a form field name to a user-facing message. An empty map
// means the submission is valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Get returns the message for field, or an empty string
func (e Errors) Get(field string) string {
	return e[field]
}

// GetValidator returns the singleton validator with the custom rating tag
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			return name
		})
		if err := validate.RegisterValidation("rating", validateRating); err != nil {
			panic(fmt.Sprintf("failed to register rating validator: %v", err))
		}
	})
	return validate
}

func validateRating(fl validator.FieldLevel) bool {
	_, err := parseRating(fl.Field().String())
	return err == nil
}

func parseRating(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < MinRating || v > MaxRating {
		return 0, fmt.Errorf("rating %v out of range", v)
	}
	return v, nil
}

func validateStruct(s any) Errors {
	errs := Errors{}
	err := GetValidator().Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "rating":
		return fmt.Sprintf("Enter a number between %g and %g, e.g. 7.5.", MinRating, MaxRating)
	default:
		return "Invalid value."
	}
}

// AddMovieForm is the title search form on /add
type AddMovieForm struct {
	Title string `form:"title" validate:"required,max=250"`
}

func ParseAddMovieForm(r *http.Request) AddMovieForm {
	return AddMovieForm{
		Title: strings.TrimSpace(r.PostFormValue("title")),
	}
}

func (f AddMovieForm) Validate() Errors {
	return validateStruct(f)
}

// RateMovieForm is the rating and review form on /edit
type RateMovieForm struct {
	Rating string `form:"rating" validate:"required,rating"`
	Review string `form:"review" validate:"max=250"`
}

func ParseRateMovieForm(r *http.Request) RateMovieForm {
	return RateMovieForm{
		Rating: strings.TrimSpace(r.PostFormValue("rating")),
		Review: strings.TrimSpace(r.PostFormValue("review")),
	}
}

func (f RateMovieForm) Validate() Errors {
	return validateStruct(f)
}

// Value returns the parsed rating. Only meaningful after Validate passed.
func (f RateMovieForm) Value() float64 {
	v, _ := parseRating(f.Rating)
	return v
}
