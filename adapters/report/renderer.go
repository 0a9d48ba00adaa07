package report

import (
	"fmt"
	"html"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"edustat/domain/core"
	"edustat/domain/stats"
	"edustat/internal"
	"edustat/ports"
)

var tokenPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Renderer writes an independent t-test result as a fixed-layout HTML table
type Renderer struct {
	templates ports.TemplateSource
	ids       ports.IDGenerator
	logger    *internal.Logger
}

// NewRenderer creates a renderer. A nil ids falls back to UUIDGenerator.
func NewRenderer(templates ports.TemplateSource, ids ports.IDGenerator, logger *internal.Logger) *Renderer {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Renderer{templates: templates, ids: ids, logger: logger}
}

// FileName returns the report file name for an identifier
func FileName(id string) string {
	return "IndTTest_" + id + ".html"
}

// Render substitutes the result into the template and writes it to a new file
// under destination. It never overwrites an existing file.
func (r *Renderer) Render(res stats.Result, destination string) (string, error) {
	var indt *stats.IndependentTTest
	switch v := res.(type) {
	case *stats.IndependentTTest:
		indt = v
	case stats.IndependentTTest:
		indt = &v
	case stats.MannWhitneyU, stats.Correlation, stats.Normality:
		return "", core.NewUnsupportedResultError(string(v.TestName()))
	case *stats.MannWhitneyU, *stats.Correlation, *stats.Normality:
		// the pointer may be a typed nil, which cannot answer TestName
		return "", core.NewUnsupportedResultError(fmt.Sprintf("%T", v))
	default:
		return "", core.NewUnsupportedResultError(fmt.Sprintf("%T", res))
	}
	if indt == nil {
		return "", core.NewUnsupportedResultError("nil result")
	}

	info, err := os.Stat(destination)
	if err != nil {
		return "", core.NewMissingResourceError("destination directory", destination, err)
	}
	if !info.IsDir() {
		return "", core.NewMissingResourceError("destination directory", destination, fmt.Errorf("not a directory"))
	}

	tmpl, err := r.templates.Template(stats.TestIndependentT)
	if err != nil {
		return "", err
	}
	content, err := Substitute(tmpl, indt)
	if err != nil {
		return "", err
	}

	path := filepath.Join(destination, FileName(r.ids.NewID()))
	if err := writeOnce(path, content); err != nil {
		return "", err
	}

	r.logger.Info("[Renderer] wrote %s report for %s to %s", indt.TestName(), indt.DepVariable, path)
	return path, nil
}

func writeOnce(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close report %s: %w", path, err)
	}
	return nil
}

// Substitute fills every token of the independent t-test layout. A token the
// layout uses but the result cannot fill is an error, so no {{...}} survives.
// {{wdf}} shows the pooled df, the same value as {{df}}.
func Substitute(template string, r *stats.IndependentTTest) (string, error) {
	values := map[string]string{
		"{{variable1}}": html.EscapeString(r.IndVariable),
		"{{F}}":         FormatNumber(float64(r.LeveneTest.F)),
		"{{lsig}}":      FormatNumber(float64(r.LeveneTest.SigTwoTailed)),
		"{{t}}":         FormatNumber(float64(r.TTest.T)),
		"{{df}}":        strconv.Itoa(r.TTest.DF),
		"{{tsig2}}":     FormatNumber(float64(r.TTest.SigTwoTailed)),
		"{{wt}}":        FormatNumber(float64(r.WelchTest.T)),
		"{{wdf}}":       strconv.Itoa(r.TTest.DF),
		"{{wsig2}}":     FormatNumber(float64(r.WelchTest.SigTwoTailed)),
	}

	for _, token := range tokenPattern.FindAllString(template, -1) {
		if _, ok := values[token]; !ok {
			return "", core.NewUnknownTokenError(token)
		}
	}

	pairs := make([]string, 0, 2*len(values))
	for token, value := range values {
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}

// FormatNumber prints a float the way the reports always have: whole numbers
// keep a trailing ".0", very small or large magnitudes use exponent notation
// and undefined values print as nan or inf.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
