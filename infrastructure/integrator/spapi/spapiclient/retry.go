package spapiclient

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// SleepFunc é injetável para que os testes simulem o tempo sem esperar.
type SleepFunc func(ctx context.Context, d time.Duration) error

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Retryable  func(error) bool
}

// DefaultRetryPolicy repete 429 e falhas de rede até três vezes, com espera dobrando a cada tentativa.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		Retryable:  IsRetryable,
	}
}

// Backoff devolve base * 2^attempt, com attempt começando em zero.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<attempt)
}

// ExecuteWithRetry executa op e repete enquanto o erro for retentável, até MaxRetries vezes.
func ExecuteWithRetry[T any](ctx context.Context, policy RetryPolicy, sleep SleepFunc, op func(context.Context) (T, error)) (T, error) {
	if sleep == nil {
		sleep = SleepContext
	}
	retryable := policy.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if !retryable(err) || attempt >= policy.MaxRetries {
			var throttle *ThrottleError
			if errors.As(err, &throttle) {
				throttle.Attempts = attempt + 1
			}
			return zero, err
		}

		delay := policy.Backoff(attempt)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay.String(),
			"error":   err.Error(),
		}).Warn("spapi: retrying request")

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}
