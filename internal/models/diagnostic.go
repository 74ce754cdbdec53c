package models

// Severity of a diagnostic raised during a pass
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// Diagnostic is a non-fatal finding raised during a pass
type Diagnostic struct {
	Severity Severity
	Pos      SourcePosition
	Message  string
}

func (d Diagnostic) String() string {
	if d.Pos.File == "" {
		return d.Message
	}
	return d.Pos.String() + ": " + d.Message
}
