package nlp

import "fmt"

// AnalyzerError represents a failure of the underlying NLP toolkit
type AnalyzerError struct {
	Message string
	Cause   error
}

func (e *AnalyzerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analyzer error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analyzer error: %s", e.Message)
}

func (e *AnalyzerError) Unwrap() error {
	return e.Cause
}
