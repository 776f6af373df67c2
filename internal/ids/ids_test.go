package ids

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	id := New()
	assert.Len(t, id, 26)
	assert.True(t, Valid(id))
}

func TestNewAt_SortsByMillisecond(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var generated []string
	for i := 0; i < 50; i++ {
		generated = append(generated, NewAt(base.Add(time.Duration(i)*time.Millisecond)))
	}

	sorted := append([]string(nil), generated...)
	sort.Strings(sorted)
	assert.Equal(t, generated, sorted)
}

func TestTime_RoundTrip(t *testing.T) {
	at := time.Date(2023, 1, 2, 3, 4, 5, int(6*time.Millisecond), time.UTC)
	got, err := Time(NewAt(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "expected %s, got %s", at, got)
}

func TestNew_ConcurrentUnique(t *testing.T) {
	const workers = 16
	const perWorker = 500

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, New())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"generated", New(), true},
		{"empty", "", false},
		{"too_short", "01HV", false},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"invalid_chars", "01HVZZZZZZZZZZZZZZZZZZZZU!", false},
		{"overflow", "ZZZZZZZZZZZZZZZZZZZZZZZZZZ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, Valid(tt.id))
		})
	}
}
