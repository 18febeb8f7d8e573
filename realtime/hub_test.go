package realtime

import (
	"testing"
)

func TestHub_JoinAndEmit(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	events, leave := hub.Join("alice")
	defer leave()

	if err := hub.Emit("alice", "task_created", "payload"); err != nil {
		t.Fatalf("Emit() error: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Name != "task_created" {
			t.Errorf("event name = %q, want task_created", ev.Name)
		}
		if ev.Payload != "payload" {
			t.Errorf("payload = %v, want %q", ev.Payload, "payload")
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestHub_EmitToAbsentUser(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	// A user with no connections simply misses the event.
	if err := hub.Emit("nobody", "task_updated", nil); err != nil {
		t.Errorf("Emit() to absent user error: %v", err)
	}
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first, leaveFirst := hub.Join("alice")
	defer leaveFirst()
	second, leaveSecond := hub.Join("alice")
	defer leaveSecond()

	if err := hub.Emit("alice", "task_updated", nil); err != nil {
		t.Fatalf("Emit() error: %v", err)
	}

	for i, ch := range []<-chan Event{first, second} {
		select {
		case ev := <-ch:
			if ev.Name != "task_updated" {
				t.Errorf("connection %d: event = %q, want task_updated", i, ev.Name)
			}
		default:
			t.Errorf("connection %d received nothing", i)
		}
	}
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	events, leave := hub.Join("alice")
	leave()

	if _, open := <-events; open {
		t.Error("channel should be closed after leave")
	}
	if err := hub.Emit("alice", "task_updated", nil); err != nil {
		t.Errorf("Emit() after leave error: %v", err)
	}

	// Leaving twice is harmless.
	leave()
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	events, leave := hub.Join("alice")
	defer leave()

	// Fill past the buffer; Emit must never block.
	for i := 0; i < subscriberBuffer+10; i++ {
		if err := hub.Emit("alice", "task_updated", i); err != nil {
			t.Fatalf("Emit() error: %v", err)
		}
	}
	if got := len(events); got != subscriberBuffer {
		t.Errorf("buffered events = %d, want %d", got, subscriberBuffer)
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	events, _ := hub.Join("alice")

	hub.Close()

	if _, open := <-events; open {
		t.Error("channel should be closed by hub shutdown")
	}
	if err := hub.Emit("alice", "task_updated", nil); err != ErrClosed {
		t.Errorf("Emit() after close error = %v, want ErrClosed", err)
	}

	// Joining a closed hub returns a closed channel.
	ch, leave := hub.Join("bob")
	if _, open := <-ch; open {
		t.Error("Join() on a closed hub should return a closed channel")
	}
	leave()
}
