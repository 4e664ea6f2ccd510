package errortypes

import "errors"

// Severity tells whether an error stopped a price from being adjusted or only reports
// configuration that was ignored.
type Severity int

const (
	SeverityUnknown Severity = iota
	// SeverityFatal: the bid or floor could not be priced.
	SeverityFatal
	// SeverityWarning: invalid adjustment data was dropped and the auction went on without it.
	SeverityWarning
)

// SeverityOf reads the severity through wrapped errors. Errors without a Coder are fatal.
func SeverityOf(err error) Severity {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.Severity()
	}
	return SeverityFatal
}

func IsWarning(err error) bool {
	return SeverityOf(err) == SeverityWarning
}

// ContainsFatalError reports whether any error in errs is fatal.
func ContainsFatalError(errs []error) bool {
	for _, err := range errs {
		if SeverityOf(err) == SeverityFatal {
			return true
		}
	}
	return false
}

// FatalOnly keeps the fatal errors of errs, in order.
func FatalOnly(errs []error) []error {
	return withSeverity(errs, SeverityFatal)
}

// WarningOnly keeps the warnings of errs, in order.
func WarningOnly(errs []error) []error {
	return withSeverity(errs, SeverityWarning)
}

func withSeverity(errs []error, severity Severity) []error {
	kept := make([]error, 0, len(errs))
	for _, err := range errs {
		if SeverityOf(err) == severity {
			kept = append(kept, err)
		}
	}
	return kept
}
