package hkid

// Checker is the operation set a form layer depends on. Hosts construct an
// Engine and pass it to whatever needs it.
type Checker interface {
	Normalize(raw string) (Candidate, error)
	ComputeCheckDigit(body Body) CheckCharacter
	Issue(body Body) Identifier
	Validate(raw string) Outcome
	ValidateParts(body, check string) Outcome
	ValidateShape(s Shape) Outcome
	Format(raw string) string
}

// Engine is the stateless Checker implementation. The zero value is ready
// to use.
type Engine struct{}

// NewEngine returns an Engine.
func NewEngine() *Engine { return &Engine{} }

func (*Engine) Normalize(raw string) (Candidate, error) { return Normalize(raw) }

func (*Engine) ComputeCheckDigit(body Body) CheckCharacter { return ComputeCheckDigit(body) }

func (*Engine) Issue(body Body) Identifier { return Issue(body) }

func (*Engine) Validate(raw string) Outcome { return Validate(raw) }

func (*Engine) ValidateParts(body, check string) Outcome { return ValidateParts(body, check) }

func (*Engine) ValidateShape(s Shape) Outcome { return s.Validate() }

func (*Engine) Format(raw string) string { return Format(raw) }

var _ Checker = (*Engine)(nil)
