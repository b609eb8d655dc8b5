package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationMissing aborts an operation without telling the user.
	ErrAuthenticationMissing = errors.New("authentication missing")
	ErrRecordNotFound        = errors.New("record not found")
)

// Toasts shown to the user.
const (
	ToastLoadFailed       = "Something went wrong while loading notes"
	ToastCreateFailed     = "Failed to create note"
	ToastSaveFailed       = "Failed to save note"
	ToastDeleteFailed     = "Failed to delete note"
	ToastTagsSaveFailed   = "Failed to save tags"
	ToastTagsAdded        = "Added successfully"
	ToastEmptyTagsCleared = "Empty tags cleared"
)

// RemoteError is a failed call to the record store. Toast is the message
// for the user; the state is left at its last good value.
type RemoteError struct {
	Op    string
	Toast string
	Err   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func remoteFailure(op, toast string, err error) error {
	return &RemoteError{Op: op, Toast: toast, Err: err}
}
