package util

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpr(t *testing.T) {
	tests := []struct {
		expr  string
		valid bool
	}{
		{"0 3 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 1 * MON", true},
		{"0 3 * *", false},
		{"0 0 3 * * *", false},
		{"@daily", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateCronExpr(tt.expr)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNextCronTime(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	from := time.Date(2024, 1, 1, 22, 0, 0, 0, loc) // 03:00 UTC on Jan 2

	next, err := NextCronTime("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 3, 0, 0, 0, time.UTC), next)

	_, err = NextCronTime("nope", from)
	assert.Error(t, err)
}

func TestParseCron(t *testing.T) {
	c, err := ParseCron("  */30 * * * *  ")
	require.NoError(t, err)
	assert.Equal(t, "*/30 * * * *", c.Spec)

	from := time.Date(2024, 5, 1, 10, 10, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), c.Next(from))

	_, err = ParseCron("   ")
	assert.ErrorContains(t, err, "empty")
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	assert.True(t, NewLogger("development").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewLogger("production").Enabled(ctx, slog.LevelDebug))
	assert.True(t, NewLogger("production").Enabled(ctx, slog.LevelInfo))
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerTo(&buf, "production").Info("sweep scheduled", "cron", "0 3 * * *")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "sweep scheduled", line["msg"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "0 3 * * *", line["cron"])
}
