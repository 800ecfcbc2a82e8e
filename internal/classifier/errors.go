package classifier

import "fmt"

// AIError represents a failure calling the AI classification provider
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI classification failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI classification failed: %s", e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed AI response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
