package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in *Error) when a mutation targets an id
// the backend cannot find.
var ErrNotFound = errors.New("not found")

// Op names the store operation that failed
type Op string

const (
	OpListProjects       Op = "list_projects"
	OpCreateProject      Op = "create_project"
	OpUpdateProject      Op = "update_project"
	OpUpdateProjectOrder Op = "update_project_order"
	OpDeleteProject      Op = "delete_project"
	OpListGallery        Op = "list_gallery"
	OpAddGalleryItem     Op = "add_gallery_item"
	OpRemoveGalleryItem  Op = "remove_gallery_item"
	OpListMessages       Op = "list_messages"
	OpAddMessage         Op = "add_message"
	OpMarkMessageRead    Op = "mark_message_read"
	OpDeleteMessage      Op = "delete_message"
	OpGetSettings        Op = "get_settings"
	OpPutSettings        Op = "put_settings"
)

// Error wraps a backend failure with the operation that was attempted. The
// catalog layer does not retry; it surfaces the message and leaves its
// snapshot at the last known good state.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapErr builds a *Error unless err is nil
func WrapErr(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
