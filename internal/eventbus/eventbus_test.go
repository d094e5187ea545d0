package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	if v := <-ch; v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := New[int]()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Publish after Close: %v", r)
		}
	}()
	bus.Publish(1)
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestBusFullSubscriberDropsEvent(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	for i := 0; i < 20; i++ {
		bus.Publish(i)
	}
	// buffer is 8; delivery is non-blocking, the rest are dropped
	count := 0
	for len(ch) > 0 {
		<-ch
		count++
	}
	if count != 8 {
		t.Fatalf("expected 8 buffered events, got %d", count)
	}
}
