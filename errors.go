package ttf2pcx

import "fmt"

// DestinationError is returned when the output file can't be created.
type DestinationError struct {
	Path string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("error opening %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DestinationError) Unwrap() error {
	return e.Err
}
