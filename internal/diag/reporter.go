package diag

import "zhfmt/internal/source"

// Reporter принимает готовые диагностики от lint и driver.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) {
	if f != nil && d != nil {
		f(d)
	}
}

// Report makes *Bag a Reporter; the limit still applies.
func (b *Bag) Report(d *Diagnostic) {
	if b != nil && d != nil {
		b.Add(d)
	}
}

// Error and Warning are shorthands for New with a fixed severity.
func Error(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

func Warning(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevWarning, code, primary, msg)
}

type findingKey struct {
	code       Code
	file       source.FileID
	start, end uint32
	msg        string
}

// Dedup forwards each distinct (code, span, message) once. Overlapping ignore
// patterns can make the same finding come out twice.
func Dedup(next Reporter) Reporter {
	seen := make(map[findingKey]struct{})
	return ReporterFunc(func(d *Diagnostic) {
		k := findingKey{d.Code, d.Primary.File, d.Primary.Start, d.Primary.End, d.Message}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		if next != nil {
			next.Report(d)
		}
	})
}
