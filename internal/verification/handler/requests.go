package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"hkidcheck/internal/verification/service"
	dErrors "hkidcheck/pkg/domain-errors"
	"hkidcheck/pkg/hkid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValueRequest carries one value in exactly one of the widget shapes:
// {"value"}, {"hkidPrefix","checkDigit"} or {"hkid_main","hkid_checkdigit"}.
type ValueRequest struct {
	Value          *string `json:"value,omitempty" validate:"omitempty,max=64"`
	HKIDPrefix     *string `json:"hkidPrefix,omitempty" validate:"omitempty,max=32"`
	CheckDigit     *string `json:"checkDigit,omitempty" validate:"omitempty,max=8"`
	HKIDMain       *string `json:"hkid_main,omitempty" validate:"omitempty,max=32"`
	HKIDCheckDigit *string `json:"hkid_checkdigit,omitempty" validate:"omitempty,max=8"`

	// Populated by Validate
	parsed service.Request
}

// Normalize trims surrounding whitespace so size limits apply to content.
// Implements the Normalizable interface for httputil.DecodeAndPrepare.
func (r *ValueRequest) Normalize() {
	for _, f := range []*string{r.Value, r.HKIDPrefix, r.CheckDigit, r.HKIDMain, r.HKIDCheckDigit} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// Validate checks field sizes and picks the widget shape.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := structError(validate.Struct(r)); err != nil {
		return err
	}

	combined := r.Value != nil
	prefix := r.HKIDPrefix != nil || r.CheckDigit != nil
	mainCheck := r.HKIDMain != nil || r.HKIDCheckDigit != nil

	switch {
	case combined && !prefix && !mainCheck:
		r.parsed = service.Request{
			Shape:     hkid.Combined{Value: *r.Value},
			ShapeName: service.ShapeCombined,
		}
	case prefix && !combined && !mainCheck:
		r.parsed = service.Request{
			Shape:     hkid.PrefixPair{Prefix: deref(r.HKIDPrefix), CheckDigit: deref(r.CheckDigit)},
			ShapeName: service.ShapePrefix,
		}
	case mainCheck && !combined && !prefix:
		r.parsed = service.Request{
			Shape:     hkid.MainCheckPair{Main: deref(r.HKIDMain), CheckDigit: deref(r.HKIDCheckDigit)},
			ShapeName: service.ShapeMainCheck,
		}
	default:
		return dErrors.New(dErrors.CodeBadRequest,
			"exactly one of value, hkidPrefix/checkDigit or hkid_main/hkid_checkdigit is required")
	}
	return nil
}

// Parsed returns the service request built by Validate.
func (r *ValueRequest) Parsed() service.Request {
	return r.parsed
}

// BatchRequest is the HTTP request body for POST /hkid/validate/batch.
type BatchRequest struct {
	Items []ValueRequest `json:"items"`
}

func (r *BatchRequest) Normalize() {
	for i := range r.Items {
		r.Items[i].Normalize()
	}
}

func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Items) == 0 {
		return dErrors.New(dErrors.CodeValidation, "items is required")
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return dErrors.New(dErrors.CodeOf(err), fmt.Sprintf("items[%d]: %s", i, message(err)))
		}
	}
	return nil
}

// Parsed returns the service requests in input order.
func (r *BatchRequest) Parsed() []service.Request {
	reqs := make([]service.Request, len(r.Items))
	for i := range r.Items {
		reqs[i] = r.Items[i].parsed
	}
	return reqs
}

// NormalizeRequest is the HTTP request body for POST /hkid/normalize.
type NormalizeRequest struct {
	Value string `json:"value" validate:"max=64"`
}

func (r *NormalizeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return structError(validate.Struct(r))
}

// CheckDigitRequest is the HTTP request body for POST /hkid/check-digit.
type CheckDigitRequest struct {
	Body string `json:"body" validate:"required,max=32"`
}

// Normalize trims the body so a blank one fails the required check.
func (r *CheckDigitRequest) Normalize() {
	r.Body = strings.TrimSpace(r.Body)
}

func (r *CheckDigitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return structError(validate.Struct(r))
}

// FormatRequest is the HTTP request body for POST /hkid/format.
type FormatRequest struct {
	Value string `json:"value" validate:"max=64"`
}

func (r *FormatRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return structError(validate.Struct(r))
}

// structError turns the first validator failure into a domain error.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeInternal, "request validation failed")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return dErrors.New(dErrors.CodeValidation, fe.Field()+" is required")
	case "max":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return dErrors.New(dErrors.CodeValidation, fe.Field()+" is invalid")
	}
}

func message(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
