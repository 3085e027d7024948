package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("cents", validateCents); err != nil {
		panic(err)
	}
}

// validateCents accepts numbers with at most two decimal places.
func validateCents(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
		return false
	}
	v := f.Float() * 100
	return math.Abs(v-math.Round(v)) < 1e-4
}

// errorMessages maps validation tags to user-facing templates. The first %s
// is the field path, the second (if any) the tag parameter.
var errorMessages = map[string]string{
	"required": "The %s field is required.",
	"email":    "The %s field must be a valid email address.",
	"gte":      "The %s field must be at least %s.",
	"lte":      "The %s field must not be greater than %s.",
	"oneof":    "The selected %s is invalid.",
	"url":      "The %s field must be a valid URL.",
	"cents":    "The %s field must have at most two decimal places.",
}

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

// fieldPath turns "createOrderRequest.courses[0].price" into "courses.0.price".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return indexRe.ReplaceAllString(ns, ".$1")
}

func parseMessage(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		switch e.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s field must be at least %s characters.", field, e.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("The %s field must have at least %s items.", field, e.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, e.Param())
	case "max":
		switch e.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, e.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("The %s field must not have more than %s items.", field, e.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", field, e.Param())
	}

	if msg, ok := errorMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, field, e.Param())
		}
		return fmt.Sprintf(msg, field)
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

// validateStruct runs the struct tags of s and converts failures into a
// *common.ValidationError keyed by JSON field path. It returns nil when s is
// valid.
func validateStruct(s any) *common.ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	out := &common.ValidationError{}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out.Add("request", err.Error())
		return out
	}

	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		out.Add(field, parseMessage(field, e))
	}
	return out
}
