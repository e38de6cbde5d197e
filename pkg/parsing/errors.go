package parsing

import "fmt"

// MissingElementError means a required node was not present.
type MissingElementError struct {
	Field string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing element: %s", e.Field)
}

// MissingAttributeError means a node was found but lacked the attribute
// holding the field.
type MissingAttributeError struct {
	Field string
	Attr  string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %q on %s", e.Attr, e.Field)
}

type InvalidNumberError struct {
	Field string
	Value string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number for %s: %q", e.Field, e.Value)
}

// StructuralError reports markup that breaks a shape the site always had,
// such as a value shorter than the wrapper it is supposed to carry.
type StructuralError struct {
	Context string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("unexpected page structure: %s", e.Context)
}
