package spapiclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSleeps struct {
	delays []time.Duration
}

func (r *recordedSleeps) Sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestRetryPolicy_Backoff(t *testing.T) {
	policy := RetryPolicy{BaseDelay: time.Second}

	assert.Equal(t, time.Second, policy.Backoff(0))
	assert.Equal(t, 2*time.Second, policy.Backoff(1))
	assert.Equal(t, 4*time.Second, policy.Backoff(2))
}

func TestExecuteWithRetry(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond, Retryable: IsRetryable}

	tests := []struct {
		name         string
		failures     []error
		wantErr      bool
		wantAttempts int
		wantSleeps   []time.Duration
	}{
		{
			name:         "três 429 seguidos de sucesso",
			failures:     []error{&ThrottleError{}, &ThrottleError{}, &ThrottleError{}},
			wantAttempts: 4,
			wantSleeps:   []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond},
		},
		{
			name:         "falha de rede é repetida",
			failures:     []error{&TransientNetworkError{Err: errors.New("connection reset")}},
			wantAttempts: 2,
			wantSleeps:   []time.Duration{100 * time.Millisecond},
		},
		{
			name:         "erro de status não é repetido",
			failures:     []error{&HTTPStatusError{StatusCode: 500}},
			wantErr:      true,
			wantAttempts: 1,
		},
		{
			name:         "429 esgota as tentativas",
			failures:     []error{&ThrottleError{}, &ThrottleError{}, &ThrottleError{}, &ThrottleError{}},
			wantErr:      true,
			wantAttempts: 4,
			wantSleeps:   []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeps := &recordedSleeps{}
			attempts := 0

			result, err := ExecuteWithRetry(context.Background(), policy, sleeps.Sleep, func(context.Context) (string, error) {
				attempts++
				if attempts <= len(tt.failures) {
					return "", tt.failures[attempts-1]
				}
				return "ok", nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			assert.Equal(t, tt.wantSleeps, sleeps.delays)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", result)
		})
	}
}

func TestExecuteWithRetry_ThrottleAttempts(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}
	sleeps := &recordedSleeps{}

	_, err := ExecuteWithRetry(context.Background(), policy, sleeps.Sleep, func(context.Context) (int, error) {
		return 0, &ThrottleError{Method: "GET", Path: "/orders/v0/orders"}
	})

	var throttle *ThrottleError
	require.ErrorAs(t, err, &throttle)
	assert.Equal(t, 4, throttle.Attempts)
}

func TestExecuteWithRetry_SleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteWithRetry(ctx, RetryPolicy{MaxRetries: 3, BaseDelay: time.Hour}, SleepContext, func(context.Context) (int, error) {
		return 0, &ThrottleError{}
	})

	assert.ErrorIs(t, err, context.Canceled)
}
