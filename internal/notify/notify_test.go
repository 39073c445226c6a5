package notify

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelDropsWhenFull(t *testing.T) {
	ch := make(chan domain.Notice, 1)
	n := NewChannel(ch)

	n.Notify(domain.NoticeFailure, "Failed to fetch data", "timeout")
	n.Notify(domain.NoticeFailure, "dropped", "")

	require.Len(t, ch, 1)
	got := <-ch
	assert.Equal(t, domain.Notice{Style: domain.NoticeFailure, Title: "Failed to fetch data", Detail: "timeout"}, got)
}

func TestLogWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	NewLog(logger).Notify(domain.NoticeFailure, "Failed to fetch data", "boom")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "Failed to fetch data", rec["msg"])
	assert.Equal(t, "boom", rec["detail"])
	assert.Equal(t, "failure", rec["style"])
}

func TestTeeFansOut(t *testing.T) {
	a := make(chan domain.Notice, 1)
	b := make(chan domain.Notice, 1)

	Tee(NewChannel(a), NewChannel(b)).Notify(domain.NoticeSuccess, "Pinned", "Season 2")

	assert.Equal(t, "Pinned", (<-a).Title)
	assert.Equal(t, "Pinned", (<-b).Title)
}
