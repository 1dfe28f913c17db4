package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsyncState(t *testing.T) {
	tests := []struct {
		state    AsyncState
		terminal bool
		failure  bool
	}{
		{AsyncStateQueued, false, false},
		{AsyncStateCompleted, true, false},
		{AsyncStateFailed, true, true},
		{AsyncStateError, true, true},
		{AsyncStateAborted, true, true},
		{AsyncStateInvalidated, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
			assert.Equal(t, tt.failure, tt.state.IsFailure())
		})
	}
}

func TestSubResponse_OK(t *testing.T) {
	assert.True(t, SubResponse{HTTPStatusCode: 201}.OK())
	assert.False(t, SubResponse{HTTPStatusCode: 400}.OK())
}

func TestMemberBatchSize(t *testing.T) {
	assert.Less(t, MemberBatchSize, CompositeLimit)
}
