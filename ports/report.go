package ports

import (
	"edustat/domain/stats"
)

// TemplateSource loads the HTML skeleton for a test kind
type TemplateSource interface {
	Template(name stats.TestName) (string, error)
}

// IDGenerator produces the random identifier embedded in report file names
type IDGenerator interface {
	NewID() string
}

// ReportRenderer turns a Result into a report file under destination and
// returns the file path.
type ReportRenderer interface {
	Render(r stats.Result, destination string) (string, error)
}
