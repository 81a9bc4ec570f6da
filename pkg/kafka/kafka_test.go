package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tablebooker/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	// failures fails that many writes before succeeding.
	failures int
	writes   int
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes++
	if w.err != nil {
		return w.err
	}
	if w.failures > 0 {
		w.failures--
		return errors.New("broker unavailable")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// fakeReader serves msgs once, then blocks until ctx ends.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		km := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return km, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, km := range msgs {
		r.committed = append(r.committed, km.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func header(km kafka.Message, key string) string {
	for _, h := range km.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("res-1").
		WithValue(map[string]any{"party_size": 4}).
		WithEventType("reservation.created").
		WithSource("bookings").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if msg.GetEventID() == "" {
		t.Error("event id not generated")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("timestamp header missing")
	}
	if string(msg.Value) != `{"party_size":4}` {
		t.Errorf("Value = %s", msg.Value)
	}

	_, err = NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("unencodable value: err = %v, want ErrInvalidMessage", err)
	}
}

func TestRetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("GetRetryCount() = %d, want 12", got)
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("GetRetryCount() on bad header = %d, want 0", got)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"tagged transient", NewTransientError("send", errors.New("x")), ErrorTypeTransient},
		{"tagged permanent", NewPermanentError("decode", errors.New("x")), ErrorTypePermanent},
		{"wrapped tag", fmt.Errorf("outer: %w", NewTransientError("send", nil)), ErrorTypeTransient},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"network message", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"unknown", errors.New("schema mismatch"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "reservations.created")

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	msg, _ := NewMessage().WithKey("res-1").WithValue("x").WithEventType("reservation.created").Build()
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(w.messages) != 1 || string(w.messages[0].Key) != "res-1" {
		t.Fatalf("written = %+v", w.messages)
	}
	if header(w.messages[0], HeaderEventType) != "reservation.created" {
		t.Error("headers not carried")
	}
	if len(seen) != 1 || seen[0] != "reservations.created" {
		t.Errorf("middleware saw %v", seen)
	}

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key: err = %v", err)
	}

	w.err = errors.New("leader not available")
	if err := p.Publish(context.Background(), msg); ClassifyError(err) != ErrorTypeTransient {
		t.Errorf("write failure should be transient, got %v", err)
	}

	_ = p.Close()
	if err := p.Publish(context.Background(), msg); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("closed producer: err = %v", err)
	}
}

func newTestConsumer(handler MessageHandler, dlq *fakeWriter) *Consumer {
	c := &Consumer{
		topic:      "reservations.created",
		groupID:    "reservation-notifier",
		maxRetries: 3,
		handler:    handler,
		log:        logger.Discard(),
	}
	if dlq != nil {
		c.dlqWriter = dlq
	}
	return c
}

func TestConsumer_ProcessMessage(t *testing.T) {
	base := func() Message {
		msg, _ := NewMessage().WithKey("res-1").WithValue("x").Build()
		return msg
	}

	t.Run("success", func(t *testing.T) {
		dlq := &fakeWriter{}
		c := newTestConsumer(func(ctx context.Context, msg Message) error { return nil }, dlq)
		if err := c.processMessage(context.Background(), base()); err != nil {
			t.Fatalf("processMessage() error = %v", err)
		}
		if len(dlq.messages) != 0 {
			t.Error("nothing should reach the DLQ")
		}
	})

	t.Run("transient then success", func(t *testing.T) {
		calls := 0
		c := newTestConsumer(func(ctx context.Context, msg Message) error {
			calls++
			if calls < 3 {
				return NewTransientError("smtp", errors.New("timeout"))
			}
			return nil
		}, &fakeWriter{})
		if err := c.processMessage(context.Background(), base()); err != nil {
			t.Fatalf("processMessage() error = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("retries exhausted go to DLQ", func(t *testing.T) {
		calls := 0
		dlq := &fakeWriter{}
		c := newTestConsumer(func(ctx context.Context, msg Message) error {
			calls++
			return NewTransientError("smtp", errors.New("timeout"))
		}, dlq)
		if err := c.processMessage(context.Background(), base()); err == nil {
			t.Fatal("expected error")
		}
		if calls != 4 {
			t.Errorf("calls = %d, want 1 + 3 retries", calls)
		}
		if len(dlq.messages) != 1 {
			t.Fatalf("dlq messages = %d", len(dlq.messages))
		}
		km := dlq.messages[0]
		if header(km, HeaderOriginalTopic) != "reservations.created" || header(km, HeaderDLQGroup) != "reservation-notifier" {
			t.Errorf("dlq headers = %v", km.Headers)
		}
		if header(km, HeaderRetryCount) != "3" {
			t.Errorf("retry count = %q", header(km, HeaderRetryCount))
		}
	})

	t.Run("permanent goes straight to DLQ", func(t *testing.T) {
		calls := 0
		dlq := &fakeWriter{}
		c := newTestConsumer(func(ctx context.Context, msg Message) error {
			calls++
			return NewPermanentError("deserialization failed", errors.New("bad json"))
		}, dlq)
		_ = c.processMessage(context.Background(), base())
		if calls != 1 || len(dlq.messages) != 1 {
			t.Errorf("calls = %d, dlq = %d", calls, len(dlq.messages))
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		c := newTestConsumer(func(ctx context.Context, msg Message) error {
			order = append(order, "handler")
			return nil
		}, nil)
		for _, name := range []string{"outer", "inner"} {
			name := name
			c.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
				order = append(order, name)
				return next(ctx, msg)
			})
		}
		_ = c.processMessage(context.Background(), base())
		if fmt.Sprint(order) != "[outer inner handler]" {
			t.Errorf("order = %v", order)
		}
	})
}

func TestConsumer_StartCommitsOnlyAfterDLQWrite(t *testing.T) {
	permanent := func(ctx context.Context, msg Message) error {
		return NewPermanentError("deserialization failed", errors.New("bad json"))
	}
	poison := kafka.Message{Topic: "reservations.created", Offset: 7, Key: []byte("res-1"), Value: []byte("{")}

	t.Run("DLQ recovers and the offset is committed", func(t *testing.T) {
		reader := &fakeReader{msgs: []kafka.Message{poison}}
		dlq := &fakeWriter{failures: 2}
		c := newTestConsumer(permanent, dlq)
		c.reader = reader
		c.retryBackoff = time.Millisecond

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		_ = c.Start(ctx)

		if dlq.writes != 3 || len(dlq.messages) != 1 {
			t.Errorf("writes = %d, dlq = %d, want 3 writes and 1 message", dlq.writes, len(dlq.messages))
		}
		if got := reader.commits(); len(got) != 1 || got[0] != 7 {
			t.Errorf("commits = %v, want [7]", got)
		}
	})

	t.Run("DLQ down leaves the offset uncommitted", func(t *testing.T) {
		reader := &fakeReader{msgs: []kafka.Message{poison}}
		dlq := &fakeWriter{err: errors.New("broker unavailable")}
		c := newTestConsumer(permanent, dlq)
		c.reader = reader
		c.retryBackoff = time.Millisecond

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err := c.Start(ctx)

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Start() error = %v, want deadline exceeded", err)
		}
		if dlq.writes < 2 {
			t.Errorf("writes = %d, want the DLQ write retried", dlq.writes)
		}
		if got := reader.commits(); len(got) != 0 {
			t.Errorf("commits = %v, want none", got)
		}
	})
}
