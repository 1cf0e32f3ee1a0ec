package cli

import "fmt"

type notFoundError struct {
	kind string
	id   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id int) error {
	return notFoundError{kind: kind, id: id}
}

type permissionError struct {
	action string
	reason string
}

func (e permissionError) Error() string {
	return fmt.Sprintf("permission denied: %s (%s)", e.action, e.reason)
}

func errPermission(action, reason string) error {
	return permissionError{action: action, reason: reason}
}
