package log_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbctools/typec/internal/log"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want slog.Level
	}{
		{name: "trace", in: "trace", want: log.LevelTrace},
		{name: "debug", in: "debug", want: slog.LevelDebug},
		{name: "info", in: "info", want: slog.LevelInfo},
		{name: "empty defaults to info", in: "", want: slog.LevelInfo},
		{name: "warn", in: "warn", want: slog.LevelWarn},
		{name: "error", in: "error", want: slog.LevelError},
		{name: "unknown defaults to info", in: "loud", want: slog.LevelInfo},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, log.ParseLevel(tc.in))
		})
	}
}
