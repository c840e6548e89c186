package helpers

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RetryPolicy configures caller-side retries of gateway calls
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy provides sensible defaults for retrying transport failures
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2.0,
		MaxElapsedTime:  time.Minute,
	}
}

// DefaultPollPolicy suits polling a submission until the gateway decides.
// Gateways ask for polls no more often than every 10 seconds.
func DefaultPollPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      30,
		InitialInterval: 10 * time.Second,
		MaxInterval:     2 * time.Minute,
		Multiplier:      1.5,
		MaxElapsedTime:  30 * time.Minute,
	}
}

// ErrStillProcessing is returned by PollUntilDecided when the policy runs out
// before the submission reaches a terminal status.
var ErrStillProcessing = errors.New("submission is still being processed")

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	expBackoff := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		expBackoff.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		expBackoff.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 0 {
		expBackoff.Multiplier = p.Multiplier
	}
	expBackoff.MaxElapsedTime = p.MaxElapsedTime

	var b backoff.BackOff = expBackoff
	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, uint64(p.MaxRetries))
	}
	return backoff.WithContext(b, ctx)
}

// RetryTransient runs op until it succeeds, the policy is exhausted or op
// fails with anything other than a GatewayHTTPError. Business rejections and
// input errors are returned on the first attempt together with op's value.
func RetryTransient[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	var last T
	operation := func() (T, error) {
		v, err := op(ctx)
		last = v
		if err == nil {
			return v, nil
		}
		if !business.IsRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("Retrying gateway call after transient failure",
			zap.Error(err),
			zap.Duration("wait", wait))
	}

	v, err := backoff.RetryNotifyWithData(operation, policy.backOff(ctx), notify)
	if err != nil {
		return last, err
	}
	return v, nil
}

// PollUntilDecided calls poll until the submission is accepted or rejected.
// Transient failures and in-flight statuses are retried under policy; a
// business rejection ends polling straight away.
func PollUntilDecided(ctx context.Context, policy RetryPolicy, poll func(context.Context) (*business.SubmissionResult, error)) (*business.SubmissionResult, error) {
	var last *business.SubmissionResult
	operation := func() (*business.SubmissionResult, error) {
		result, err := poll(ctx)
		if result != nil {
			last = result
		}
		switch {
		case err != nil && business.IsRetryable(err):
			return result, err
		case err != nil:
			return result, backoff.Permanent(err)
		case result == nil || !result.Status.IsTerminal():
			return result, ErrStillProcessing
		}
		return result, nil
	}

	notify := func(err error, wait time.Duration) {
		fields := []zap.Field{zap.Duration("wait", wait)}
		if last != nil {
			fields = append(fields,
				zap.String("correlation_id", last.CorrelationID),
				zap.String("status", string(last.Status)))
		}
		if !errors.Is(err, ErrStillProcessing) {
			fields = append(fields, zap.Error(err))
		}
		logger.Debug("Polling submission again", fields...)
	}

	result, err := backoff.RetryNotifyWithData(operation, policy.backOff(ctx), notify)
	if err != nil {
		return last, err
	}
	return result, nil
}
