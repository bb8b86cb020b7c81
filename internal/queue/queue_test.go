package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryRoundTrip(t *testing.T) {
	q := NewInMemory(4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := q.Publish(ctx, Message{Type: TypeCheckIn, Body: []byte("u1")}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	select {
	case msg := <-messages:
		if msg.Type != TypeCheckIn || string(msg.Body) != "u1" {
			t.Fatalf("unexpected message %s %q", msg.Type, msg.Body)
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestPublishHonorsCancellation(t *testing.T) {
	q := NewInMemory(1)
	ctx := context.Background()
	if err := q.Publish(ctx, Message{Type: TypeCheckIn}); err != nil {
		t.Fatalf("publish into free buffer: %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Publish(cancelled, Message{Type: TypeCheckIn}); err == nil {
		t.Fatal("publish into a full buffer with cancelled context should fail")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	msg := Message{Type: TypeCheckOut, Body: []byte("user|with|pipes")}
	got := deserialize(serialize(msg))
	if got.Type != msg.Type || string(got.Body) != string(msg.Body) {
		t.Fatalf("round trip mangled message: %+v", got)
	}
}

func TestDeserializeWithoutType(t *testing.T) {
	got := deserialize("raw-body")
	if got.Type != "" || string(got.Body) != "raw-body" {
		t.Fatalf("unexpected message %+v", got)
	}
}
