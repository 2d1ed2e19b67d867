package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCart is returned when submission is attempted with no line items
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ValidationError carries the field-keyed messages from a failed form gate
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("checkout: invalid form fields: %s", strings.Join(fields, ", "))
}
