package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast() []Option {
	return []Option{WithInitialDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}
}

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, fast()...)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	persistent := errors.New("persistent error")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return persistent
	}, append(fast(), WithMaxRetries(2))...)

	require.Error(t, err)
	assert.ErrorIs(t, err, persistent)
	// MaxRetries counts retries after the first attempt.
	assert.Equal(t, 3, attempts)
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	attempts := 0
	base := errors.New("bad input")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return Fatal(base)
	}, fast()...)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, base)
	assert.True(t, IsFatal(err))
}

func TestDo_RetryIf(t *testing.T) {
	t.Parallel()
	attempts := 0
	permanent := errors.New("permanent")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return permanent
	}, append(fast(), WithRetryIf(func(err error) bool { return !errors.Is(err, permanent) }))...)

	assert.Equal(t, 1, attempts)
	assert.Equal(t, permanent, err)
}

func TestDo_OnRetry(t *testing.T) {
	t.Parallel()
	var seen []int
	_ = Do(context.Background(), func(context.Context) error {
		return errors.New("again")
	}, append(fast(), WithMaxRetries(2), WithOnRetry(func(attempt int, _ error, _ time.Duration) {
		seen = append(seen, attempt)
	}))...)

	assert.Equal(t, []int{1, 2}, seen)
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := Do(ctx, func(context.Context) error {
		attempts++
		cancel()
		return errors.New("temporary")
	}, WithInitialDelay(time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestFatal_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fatal(nil))
	assert.False(t, IsFatal(errors.New("plain")))
}
