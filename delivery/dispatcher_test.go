package delivery

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures log records for assertions.
type recordingHandler struct {
	records *[]slog.Record
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}
func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func newRecordedDispatcher(opts ...Option) (*Dispatcher, *[]slog.Record) {
	records := &[]slog.Record{}
	logger := slog.New(recordingHandler{records: records})
	opts = append(opts, WithLogger(logger))
	return NewDispatcher(opts...), records
}

func lastRecord(t *testing.T, records *[]slog.Record) slog.Record {
	t.Helper()
	require.NotEmpty(t, *records)
	return (*records)[len(*records)-1]
}

func attrValue(r slog.Record, key string) string {
	var value string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func TestDispatch(t *testing.T) {
	t.Run("chat channel", func(t *testing.T) {
		d, records := newRecordedDispatcher()
		d.Dispatch(ChannelChat, "hello", "")

		r := lastRecord(t, records)
		assert.Equal(t, "delivered response", r.Message)
		assert.Equal(t, ChannelChat, attrValue(r, "channel"))
	})

	t.Run("email uses given recipient", func(t *testing.T) {
		d, records := newRecordedDispatcher(WithEmail("fallback@example.com"))
		d.Dispatch(ChannelEmail, "hello", "alice@example.com")

		r := lastRecord(t, records)
		assert.Equal(t, "delivered response", r.Message)
		assert.Equal(t, "alice@example.com", attrValue(r, "recipient"))
	})

	t.Run("email falls back to default recipient", func(t *testing.T) {
		d, records := newRecordedDispatcher(WithEmail("fallback@example.com"))
		d.Dispatch(ChannelEmail, "hello", "")

		r := lastRecord(t, records)
		assert.Equal(t, "fallback@example.com", attrValue(r, "recipient"))
	})

	t.Run("email disabled", func(t *testing.T) {
		d, records := newRecordedDispatcher()
		d.Dispatch(ChannelEmail, "hello", "alice@example.com")

		r := lastRecord(t, records)
		assert.Equal(t, slog.LevelWarn, r.Level)
	})

	t.Run("email without any recipient skipped", func(t *testing.T) {
		d, records := newRecordedDispatcher(WithEmail(""))
		d.Dispatch(ChannelEmail, "hello", "")

		r := lastRecord(t, records)
		assert.Equal(t, slog.LevelWarn, r.Level)
	})

	t.Run("whatsapp uses given number", func(t *testing.T) {
		d, records := newRecordedDispatcher(WithWhatsApp("+15550000000"))
		d.Dispatch(ChannelWhatsApp, "hello", "+15551234567")

		r := lastRecord(t, records)
		assert.Equal(t, "delivered response", r.Message)
		assert.Equal(t, ChannelWhatsApp, attrValue(r, "channel"))
		assert.Equal(t, "+15551234567", attrValue(r, "recipient"))
	})

	t.Run("whatsapp falls back to default number", func(t *testing.T) {
		d, records := newRecordedDispatcher(WithWhatsApp("+15550000000"))
		d.Dispatch(ChannelWhatsApp, "hello", "")

		r := lastRecord(t, records)
		assert.Equal(t, "+15550000000", attrValue(r, "recipient"))
	})

	t.Run("whatsapp disabled", func(t *testing.T) {
		d, records := newRecordedDispatcher()
		d.Dispatch(ChannelWhatsApp, "hello", "+15551234567")

		r := lastRecord(t, records)
		assert.Equal(t, slog.LevelWarn, r.Level)
	})

	t.Run("unknown channel logged", func(t *testing.T) {
		d, records := newRecordedDispatcher()
		d.Dispatch("carrier-pigeon", "hello", "")

		r := lastRecord(t, records)
		assert.Equal(t, slog.LevelWarn, r.Level)
		assert.Equal(t, "carrier-pigeon", attrValue(r, "channel"))
	})
}
