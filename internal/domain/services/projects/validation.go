package projects

import (
	"errors"
	"strings"
)

// notBlank rejects strings that are empty after trimming; nil pointers pass
func notBlank(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return errors.New("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// deadlineFormat accepts RFC 3339 timestamps or YYYY-MM-DD dates; nil passes
func deadlineFormat(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return errors.New("must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := ParseDeadline(s); err != nil {
		return errors.New("must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}
	return nil
}
