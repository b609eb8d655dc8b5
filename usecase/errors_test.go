package usecase_test

import (
	"errors"
	"testing"

	"kitnotes/usecase"

	"github.com/stretchr/testify/assert"
)

func TestToasts(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{usecase.ToastLoadFailed, "Something went wrong while loading notes"},
		{usecase.ToastCreateFailed, "Failed to create note"},
		{usecase.ToastSaveFailed, "Failed to save note"},
		{usecase.ToastDeleteFailed, "Failed to delete note"},
		{usecase.ToastTagsSaveFailed, "Failed to save tags"},
		{usecase.ToastTagsAdded, "Added successfully"},
		{usecase.ToastEmptyTagsCleared, "Empty tags cleared"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

func TestRemoteErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&usecase.RemoteError{Op: "save note", Toast: usecase.ToastSaveFailed, Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save note: connection reset", err.Error())
}
