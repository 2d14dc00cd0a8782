package pipeline

import "fmt"

// ValidationError rejects a request before the pipeline runs: empty dish
// list, grams outside the accepted range, or an unknown goal id.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}
