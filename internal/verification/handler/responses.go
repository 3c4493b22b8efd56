package handler

import (
	"time"

	"hkidcheck/internal/verification/service"
	"hkidcheck/pkg/hkid"
)

// ValidationResponse is the HTTP response for one validated value. Invalid
// values are reported here with HTTP 200.
type ValidationResponse struct {
	Valid      bool   `json:"valid"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Formatted  string `json:"formatted"`
	Shape      string `json:"shape"`
	// Value is the canonical identifier in the caller's widget shape.
	Value     any       `json:"value,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// FromResult converts a service Result to an HTTP response.
func FromResult(res service.Result) ValidationResponse {
	o := res.Outcome
	resp := ValidationResponse{
		Valid:     o.Valid(),
		Formatted: hkid.Format(o.Raw),
		Shape:     res.ShapeName,
		CheckedAt: res.CheckedAt,
	}
	if !o.Valid() {
		resp.ErrorKind = o.Kind.String()
		resp.Detail = o.Detail
		resp.Expected = o.Expected.String()
		resp.Actual = o.Actual.String()
		return resp
	}

	resp.Identifier = o.Identifier.String()
	switch res.ShapeName {
	case service.ShapePrefix:
		resp.Value = hkid.ToPrefixPair(o.Identifier)
	case service.ShapeMainCheck:
		resp.Value = hkid.ToMainCheckPair(o.Identifier)
	default:
		resp.Value = hkid.ToCombined(o.Identifier)
	}
	return resp
}

// BatchResponse is the HTTP response for POST /hkid/validate/batch.
type BatchResponse struct {
	Results []ValidationResponse `json:"results"`
	Valid   int                  `json:"valid"`
	Invalid int                  `json:"invalid"`
}

func FromResults(results []service.Result) BatchResponse {
	resp := BatchResponse{Results: make([]ValidationResponse, len(results))}
	for i, r := range results {
		resp.Results[i] = FromResult(r)
		if r.Outcome.Valid() {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}
	return resp
}

// NormalizeResponse is the HTTP response for POST /hkid/normalize.
type NormalizeResponse struct {
	Body    string `json:"body"`
	Letters string `json:"letters"`
	Digits  string `json:"digits"`
	// Check is the claimed check character, unverified.
	Check string `json:"check,omitempty"`
}

func FromCandidate(c hkid.Candidate) NormalizeResponse {
	return NormalizeResponse{
		Body:    c.Body.String(),
		Letters: c.Body.Letters(),
		Digits:  c.Body.Digits(),
		Check:   c.Check.String(),
	}
}

// CheckDigitResponse is the HTTP response for POST /hkid/check-digit.
type CheckDigitResponse struct {
	Body       string `json:"body"`
	CheckDigit string `json:"check_digit"`
	Identifier string `json:"identifier"`
}

func FromIdentifier(id hkid.Identifier) CheckDigitResponse {
	return CheckDigitResponse{
		Body:       id.Body().String(),
		CheckDigit: id.Check().String(),
		Identifier: id.String(),
	}
}

// FormatResponse is the HTTP response for POST /hkid/format.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}
