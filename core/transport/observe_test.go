package transport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/pookanfai/studio/providers/observability"
	obsslog "github.com/pookanfai/studio/providers/observability/slog"
)

func newTestObserver() (*obsslog.Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return obsslog.New(logger), &buf
}

// TestObserver_RetriedSuccess verifies one span and one request are recorded
// for a call that needed retries.
func TestObserver_RetriedSuccess(t *testing.T) {
	observer, buf := newTestObserver()
	sleeper := &fakeSleeper{}
	fake := &failingSend{failures: 2}

	tr := New(
		WithSendFunc(fake.send),
		WithRetry(RetryConfig{Sleep: sleeper.sleep}),
		WithObserver(observer),
	)
	if _, err := tr.Execute(context.Background(), mustEnvelope(t, "http://unused/models/m:generateContent")); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	snap := observer.Snapshot()
	if got := snap.Counters[observability.MetricRequestCount]; got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
	if got := snap.Counters[observability.MetricRetryCount]; got != 2 {
		t.Errorf("expected 2 retries, got %d", got)
	}
	if got := snap.Counters[observability.MetricRequestFailures]; got != 0 {
		t.Errorf("expected no failures, got %d", got)
	}
	if got := snap.Histograms[observability.MetricRequestDuration].Count; got != 1 {
		t.Errorf("expected one duration sample, got %d", got)
	}

	output := buf.String()
	if n := strings.Count(output, "span.start"); n != 1 {
		t.Errorf("expected one span, got %d", n)
	}
	if n := strings.Count(output, observability.EventAttemptFailed); n != 2 {
		t.Errorf("expected 2 attempt events, got %d", n)
	}
	if strings.Contains(output, "x-goog-api-key") {
		t.Error("credential header must never be recorded")
	}
}

func TestObserver_Exhausted(t *testing.T) {
	observer, buf := newTestObserver()
	fake := &failingSend{failures: 10}

	tr := New(
		WithSendFunc(fake.send),
		WithRetry(RetryConfig{MaxAttempts: 2, Sleep: (&fakeSleeper{}).sleep}),
		WithObserver(observer),
	)
	_, err := tr.Execute(context.Background(), mustEnvelope(t, "http://unused"))
	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("expected ErrRetryExhausted, got %v", err)
	}

	if got := observer.Snapshot().Counters[observability.MetricRequestFailures]; got != 1 {
		t.Errorf("expected 1 failure, got %d", got)
	}
	output := buf.String()
	if !strings.Contains(output, "status=error") || !strings.Contains(output, "http.status_code=503") {
		t.Errorf("expected error status and code on span, got: %s", output)
	}
}
