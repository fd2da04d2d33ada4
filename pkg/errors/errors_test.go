package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeAndMatchesSentinel(t *testing.T) {
	err := Clone(ErrSaveFailed, "insert phase failed")

	assert.Equal(t, "insert phase failed", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, ErrSaveFailed))
	assert.False(t, errors.Is(err, ErrClearFailed))
}

func TestWrapAsUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := WrapAs(ErrLoadFailed, cause, "")

	assert.Equal(t, ErrLoadFailed.Message, err.Message)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)

	wrapped := fmt.Errorf("outer: %w", ErrOperationInProgress)
	assert.Equal(t, ErrOperationInProgress.Code, FromError(wrapped).Code)
	assert.Nil(t, FromError(nil))
}
