package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Exporting...")
			s.Start()
			time.Sleep(60 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Exporting...")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithSuccess("done")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Exporting...")
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.StopWithError("failed")
}

func TestStopExport(t *testing.T) {
	failure := errors.New("boom")

	tests := []struct {
		name   string
		cancel bool
		err    error
		check  func(error) bool
	}{
		{"success", false, nil, func(err error) bool { return err == nil }},
		{"failure", false, failure, func(err error) bool {
			return errors.Is(err, failure) && strings.HasPrefix(err.Error(), "render: ")
		}},
		{"cancelled", true, context.Canceled, func(err error) bool { return err == context.Canceled }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			s := newSpinnerWithContext(ctx, "Exporting...")
			s.Start()
			if tt.cancel {
				cancel()
			}
			if got := stopExport(s, "session", tt.err); !tt.check(got) {
				t.Errorf("stopExport() = %v", got)
			}
		})
	}
}
