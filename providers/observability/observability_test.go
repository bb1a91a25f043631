package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAttributes(t *testing.T) {
	tests := []struct {
		name string
		attr Attribute
		key  string
		want any
	}{
		{"string", String("k", "v"), "k", "v"},
		{"int", Int("n", 42), "n", 42},
		{"int64", Int64("n", 1<<40), "n", int64(1 << 40)},
		{"float", Float64("f", 1.5), "f", 1.5},
		{"bool", Bool("b", true), "b", true},
		{"duration", Duration("d", time.Second), "d", time.Second},
		{"error", Error(errors.New("boom")), AttrError, "boom"},
		{"nil error", Error(nil), AttrError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key || tt.attr.Value != tt.want {
				t.Errorf("expected %s=%v, got %s=%v", tt.key, tt.want, tt.attr.Key, tt.attr.Value)
			}
		})
	}
}

func TestStatusCode_String(t *testing.T) {
	if StatusOK.String() != "ok" || StatusError.String() != "error" || StatusUnset.String() != "unset" {
		t.Error("unexpected status names")
	}
}

func TestSpanContext(t *testing.T) {
	if SpanFromContext(context.Background()) != nil {
		t.Error("expected no span on a bare context")
	}

	var span Span = nopSpan{}
	ctx := ContextWithSpan(context.Background(), span)
	if SpanFromContext(ctx) != span {
		t.Error("expected span from context")
	}

	//nolint:staticcheck // nil context is handled
	if ContextWithSpan(nil, span) == nil {
		t.Error("expected a context for nil parent")
	}
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var p Provider = Nop{}

	got, span := p.StartSpan(ctx, "x")
	if got != ctx {
		t.Error("Nop must return the parent context")
	}
	span.AddEvent("e")
	span.SetStatus(StatusOK, "")
	span.End()
	p.Counter("c").Add(ctx, 1)
	p.Histogram("h").Record(ctx, 1)
}
