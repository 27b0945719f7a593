package preference

import "errors"

// ErrInvalidDocument is returned when a document or overlay does not
// conform to the closed category/field schema.
var ErrInvalidDocument = errors.New("invalid preference document")
