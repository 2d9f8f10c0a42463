package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/studiowebux/redis-nav/internal/redisstore"
)

type fakeStore struct {
	keys     []string
	types    map[string]redisstore.DataType
	values   map[string]redisstore.Value
	ttls     map[string]int64
	writes   map[string][]byte
	deleted  map[string]bool
	failNext bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		types:   map[string]redisstore.DataType{},
		values:  map[string]redisstore.Value{},
		ttls:    map[string]int64{},
		writes:  map[string][]byte{},
		deleted: map[string]bool{},
	}
}

func (f *fakeStore) Enumerate(ctx context.Context, pattern string) ([]string, error) {
	if f.failNext {
		return nil, fmt.Errorf("boom")
	}
	return f.keys, nil
}

func (f *fakeStore) ProbeType(ctx context.Context, key string) (redisstore.DataType, error) {
	return f.types[key], nil
}

func (f *fakeStore) Fetch(ctx context.Context, key string, dt redisstore.DataType) (redisstore.Value, error) {
	return f.values[key], nil
}

func (f *fakeStore) TTL(ctx context.Context, key string) (int64, error) {
	return f.ttls[key], nil
}

func (f *fakeStore) WriteString(ctx context.Context, key string, value []byte) error {
	f.writes[key] = value
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deleted[key] = true
	return nil
}

func (f *fakeStore) Close() error { return nil }

func waitEvent(t *testing.T, events <-chan Event) Event {
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBusEnumerateEmitsKeysLoaded(t *testing.T) {
	store := newFakeStore()
	store.keys = []string{"user:1", "user:2"}
	store.types["user:1"] = redisstore.TypeString
	store.types["user:2"] = redisstore.TypeHash

	bus := NewBus(store)
	defer bus.Close()

	bus.Commands <- Command{Kind: CmdEnumerate, Pattern: "*"}
	ev := waitEvent(t, bus.Events)
	if ev.Kind != EvKeysLoaded {
		t.Fatalf("expected EvKeysLoaded, got %v", ev.Kind)
	}
	if len(ev.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(ev.Keys))
	}
}

func TestBusFetchEmitsValueLoaded(t *testing.T) {
	store := newFakeStore()
	store.types["user:1"] = redisstore.TypeString
	store.values["user:1"] = redisstore.Value{Type: redisstore.TypeString, String: "hi"}
	store.ttls["user:1"] = -1

	bus := NewBus(store)
	defer bus.Close()

	bus.Commands <- Command{Kind: CmdFetch, Key: "user:1"}
	ev := waitEvent(t, bus.Events)
	if ev.Kind != EvValueLoaded {
		t.Fatalf("expected EvValueLoaded, got %v", ev.Kind)
	}
	if ev.Value.String != "hi" || ev.TTL != -1 {
		t.Fatalf("unexpected value/ttl: %+v", ev)
	}
}

func TestBusWriteAndDelete(t *testing.T) {
	store := newFakeStore()
	bus := NewBus(store)
	defer bus.Close()

	bus.Commands <- Command{Kind: CmdWriteString, Key: "k", Bytes: []byte("v")}
	ev := waitEvent(t, bus.Events)
	if ev.Kind != EvWriteOk || ev.Key != "k" {
		t.Fatalf("unexpected write event: %+v", ev)
	}

	bus.Commands <- Command{Kind: CmdDelete, Key: "k"}
	ev = waitEvent(t, bus.Events)
	if ev.Kind != EvDeleteOk || ev.Key != "k" {
		t.Fatalf("unexpected delete event: %+v", ev)
	}
	if !store.deleted["k"] {
		t.Fatal("expected key to be marked deleted in store")
	}
}

func TestBusEnumerateFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.failNext = true
	bus := NewBus(store)
	defer bus.Close()

	bus.Commands <- Command{Kind: CmdEnumerate, Pattern: "*"}
	ev := waitEvent(t, bus.Events)
	if ev.Kind != EvFailure {
		t.Fatalf("expected EvFailure, got %v", ev.Kind)
	}
}

func TestBusPreservesCommandOrder(t *testing.T) {
	store := newFakeStore()
	store.types["a"] = redisstore.TypeString
	store.types["b"] = redisstore.TypeString
	store.values["a"] = redisstore.Value{Type: redisstore.TypeString, String: "A"}
	store.values["b"] = redisstore.Value{Type: redisstore.TypeString, String: "B"}

	bus := NewBus(store)
	defer bus.Close()

	bus.Commands <- Command{Kind: CmdFetch, Key: "a"}
	bus.Commands <- Command{Kind: CmdFetch, Key: "b"}

	first := waitEvent(t, bus.Events)
	second := waitEvent(t, bus.Events)
	if first.Key != "a" || second.Key != "b" {
		t.Fatalf("expected replies in FIFO order, got %q then %q", first.Key, second.Key)
	}
}

func TestTrySendNonBlockingWhenFull(t *testing.T) {
	store := newFakeStore()
	bus := NewBus(store)
	defer bus.Close()

	accepted := 0
	for i := 0; i < DefaultCapacity+1; i++ {
		if bus.TrySend(Command{Kind: CmdFetch, Key: "k"}) {
			accepted++
		}
	}
	if accepted == 0 {
		t.Fatal("expected at least one command accepted")
	}
}
