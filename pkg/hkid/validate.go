package hkid

// Outcome is the tagged result of validation: either valid with an
// Identifier, or invalid with a Kind and diagnostics.
type Outcome struct {
	Identifier Identifier
	// Body is set whenever normalization succeeded, including checksum
	// mismatches and missing check characters.
	Body   Body
	Kind   ErrorKind
	Detail string
	// Expected and Actual are set for KindChecksumMismatch.
	Expected CheckCharacter
	Actual   CheckCharacter
	Raw      string
}

// Valid reports whether the outcome carries a verified Identifier.
func (o Outcome) Valid() bool { return o.Kind == KindNone }

// Err returns nil for a valid outcome and an *Error otherwise.
func (o Outcome) Err() error {
	if o.Valid() {
		return nil
	}
	return &Error{
		Kind:     o.Kind,
		Raw:      o.Raw,
		Detail:   o.Detail,
		Expected: o.Expected,
		Actual:   o.Actual,
	}
}

// Validate verifies a single-field value such as "K123456(8)".
//
// Input that is blank after removing whitespace and brackets yields
// KindEmpty so callers can tell "nothing entered" from "entered but wrong";
// whether absence is acceptable is the caller's decision.
func Validate(raw string) Outcome {
	if isBlank(raw) {
		return invalid(KindEmpty, raw, "no input")
	}
	c, err := Normalize(raw)
	if err != nil {
		return invalid(KindMalformedInput, raw, grammarDetail)
	}
	if !c.HasCheck() {
		return missingCheck(raw, c.Body)
	}
	return verify(raw, c.Body, c.Check)
}

// ValidateParts verifies a two-field value: the body as typed in the first
// field and the check character typed in the second.
//
// A body that already ends in a check character is accepted when the second
// field is blank or repeats the same character.
func ValidateParts(body, check string) Outcome {
	raw := body + openBracket + check + closeBracket
	bodyBlank, checkBlank := isBlank(body), isBlank(check)

	switch {
	case bodyBlank && checkBlank:
		return invalid(KindEmpty, raw, "no input")
	case bodyBlank:
		return invalid(KindMalformedInput, raw, "body missing")
	}

	c, err := Normalize(body)
	if err != nil {
		return invalid(KindMalformedInput, raw, grammarDetail)
	}

	if checkBlank {
		if c.HasCheck() {
			return verify(raw, c.Body, c.Check)
		}
		return missingCheck(raw, c.Body)
	}

	claimed, ok := ParseCheckCharacter(clean(check))
	if !ok {
		return invalid(KindMalformedInput, raw, "check character must be a single digit or A")
	}
	if c.HasCheck() && c.Check != claimed {
		return invalid(KindMalformedInput, raw, "conflicting check characters")
	}
	return verify(raw, c.Body, claimed)
}

func verify(raw string, body Body, claimed CheckCharacter) Outcome {
	expected := ComputeCheckDigit(body)
	if expected != claimed {
		return Outcome{
			Body:     body,
			Kind:     KindChecksumMismatch,
			Detail:   "check character does not match",
			Expected: expected,
			Actual:   claimed,
			Raw:      raw,
		}
	}
	return Outcome{Identifier: Identifier{body: body, check: claimed}, Body: body, Raw: raw}
}

func missingCheck(raw string, body Body) Outcome {
	return Outcome{Body: body, Kind: KindMissingCheckCharacter, Raw: raw, Detail: "check character missing"}
}

func invalid(kind ErrorKind, raw, detail string) Outcome {
	return Outcome{Kind: kind, Raw: raw, Detail: detail}
}
