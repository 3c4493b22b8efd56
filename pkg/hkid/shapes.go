package hkid

// Shape is any external representation a form widget submits.
type Shape interface {
	// Validate runs the engine on the shape's fields.
	Validate() Outcome
	// IsEmpty reports whether every field is blank.
	IsEmpty() bool
}

// Combined is the single-field widget value, e.g. "K123456(8)".
type Combined struct {
	Value string `json:"value"`
}

func (c Combined) Validate() Outcome { return Validate(c.Value) }

func (c Combined) IsEmpty() bool { return isBlank(c.Value) }

// ToCombined renders id for a single-field widget.
func ToCombined(id Identifier) Combined {
	return Combined{Value: id.String()}
}

// PrefixPair is the two-field widget value.
type PrefixPair struct {
	Prefix     string `json:"hkidPrefix"`
	CheckDigit string `json:"checkDigit"`
}

func (p PrefixPair) Validate() Outcome { return ValidateParts(p.Prefix, p.CheckDigit) }

func (p PrefixPair) IsEmpty() bool { return isBlank(p.Prefix) && isBlank(p.CheckDigit) }

// ToPrefixPair splits id for a two-field widget.
func ToPrefixPair(id Identifier) PrefixPair {
	return PrefixPair{Prefix: id.Body().String(), CheckDigit: id.Check().String()}
}

// MainCheckPair is the composite widget value with snake_case field names.
type MainCheckPair struct {
	Main       string `json:"hkid_main"`
	CheckDigit string `json:"hkid_checkdigit"`
}

func (p MainCheckPair) Validate() Outcome { return ValidateParts(p.Main, p.CheckDigit) }

func (p MainCheckPair) IsEmpty() bool { return isBlank(p.Main) && isBlank(p.CheckDigit) }

// ToMainCheckPair splits id for the composite widget.
func ToMainCheckPair(id Identifier) MainCheckPair {
	return MainCheckPair{Main: id.Body().String(), CheckDigit: id.Check().String()}
}

var (
	_ Shape = Combined{}
	_ Shape = PrefixPair{}
	_ Shape = MainCheckPair{}
)
