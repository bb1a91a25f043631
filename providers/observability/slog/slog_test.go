package slog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/pookanfai/studio/providers/observability"
)

func newTestObserver() (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger), &buf
}

func TestObserver_NilLogger(t *testing.T) {
	if New(nil) == nil {
		t.Fatal("New(nil) returned nil")
	}
}

// TestObserver_StartSpan verifies the span is logged and carried on the
// returned context.
func TestObserver_StartSpan(t *testing.T) {
	obs, buf := newTestObserver()

	ctx, span := obs.StartSpan(context.Background(), observability.SpanTransportExecute,
		observability.String(observability.AttrCapability, "text"),
	)

	if observability.SpanFromContext(ctx) != span {
		t.Error("expected span on context")
	}
	output := buf.String()
	if !strings.Contains(output, "transport.execute") || !strings.Contains(output, "span.start") {
		t.Errorf("expected span start record, got: %s", output)
	}
	if !strings.Contains(output, "studio.capability=text") {
		t.Errorf("expected capability attribute, got: %s", output)
	}
}

func TestSpan_EndOnce(t *testing.T) {
	obs, buf := newTestObserver()
	_, span := obs.StartSpan(context.Background(), "work")
	buf.Reset()

	span.End()
	span.End()

	if n := strings.Count(buf.String(), "span.end"); n != 1 {
		t.Errorf("expected one span.end record, got %d", n)
	}
	if !strings.Contains(buf.String(), "duration") {
		t.Errorf("expected duration, got: %s", buf.String())
	}
}

func TestSpan_ErrorStatus(t *testing.T) {
	obs, buf := newTestObserver()
	_, span := obs.StartSpan(context.Background(), "work")

	span.RecordError(errors.New("HTTP error! status: 503"))
	span.RecordError(nil)
	span.SetStatus(observability.StatusError, "retries exhausted")
	buf.Reset()
	span.End()

	output := buf.String()
	for _, want := range []string{"level=WARN", "status=error", "retries exhausted", "status: 503"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestSpan_AddEvent(t *testing.T) {
	obs, buf := newTestObserver()
	_, span := obs.StartSpan(context.Background(), "work")
	buf.Reset()

	span.AddEvent(observability.EventAttemptFailed, observability.Int(observability.AttrAttempt, 2))

	output := buf.String()
	if !strings.Contains(output, "transport.attempt.failed") || !strings.Contains(output, "transport.attempt=2") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestMetrics_Snapshot(t *testing.T) {
	obs, _ := newTestObserver()
	ctx := context.Background()

	counter := obs.Counter(observability.MetricRequestCount)
	if obs.Counter(observability.MetricRequestCount) != counter {
		t.Error("expected the same counter for the same name")
	}
	counter.Add(ctx, 2)
	counter.Add(ctx, 3)

	hist := obs.Histogram(observability.MetricRequestDuration)
	for _, v := range []float64{40, 10, 25} {
		hist.Record(ctx, v)
	}

	snap := obs.Snapshot()
	if got := snap.Counters[observability.MetricRequestCount]; got != 5 {
		t.Errorf("expected counter 5, got %d", got)
	}
	summary := snap.Histograms[observability.MetricRequestDuration]
	if summary.Count != 3 || summary.Sum != 75 || summary.Min != 10 || summary.Max != 40 {
		t.Errorf("unexpected summary %+v", summary)
	}

	names := snap.Names()
	if len(names) != 2 || names[0] > names[1] {
		t.Errorf("expected two sorted names, got %v", names)
	}
}

func TestMetrics_ConcurrentAdd(t *testing.T) {
	obs, _ := newTestObserver()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs.Counter("c").Add(ctx, 1)
		}()
	}
	wg.Wait()

	if got := obs.Snapshot().Counters["c"]; got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
}
