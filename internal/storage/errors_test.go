package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	timeout := &TimeoutError{Op: "list venues", Err: context.DeadlineExceeded}
	wrapped := fmt.Errorf("handler: %w", timeout)

	require.True(t, IsTimeout(wrapped))
	require.False(t, IsQueryFailed(wrapped))
	require.ErrorIs(t, wrapped, context.DeadlineExceeded)
	require.Contains(t, wrapped.Error(), "list venues: storage timeout")

	cause := errors.New("relation does not exist")
	failed := fmt.Errorf("outer: %w", &QueryFailedError{Op: "get venue", Err: cause})

	require.True(t, IsQueryFailed(failed))
	require.False(t, IsTimeout(failed))
	require.ErrorIs(t, failed, cause)
}
