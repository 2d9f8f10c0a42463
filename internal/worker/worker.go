// Package worker implements the Message/Command Bus: two bounded,
// unidirectional channels between the UI loop and a background task that
// owns the datastore connection, plus the serial command loop itself.
//
// This generalizes the teacher's single-shot HTTP executor (one request in,
// one result out) into a long-lived worker that drains a Commands channel
// and emits Events, mirroring the async-goroutine-with-cancel-context
// pattern the teacher used per request.
package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/studiowebux/redis-nav/internal/redisstore"
)

// DefaultCapacity is the soft bound on both channels (§4.6).
const DefaultCapacity = 100

// Command is a UI→Worker request.
type Command struct {
	Kind    CommandKind
	Pattern string // Enumerate
	Key     string // Fetch, WriteString, Delete
	Bytes   []byte // WriteString
}

type CommandKind int

const (
	CmdEnumerate CommandKind = iota
	CmdFetch
	CmdWriteString
	CmdDelete
)

// Event is a Worker→UI reply.
type Event struct {
	Kind    EventKind
	Keys    []KeyType // KeysLoaded
	Key     string    // ValueLoaded, WriteOk, DeleteOk
	Value   redisstore.Value
	TTL     int64
	Type    redisstore.DataType
	Failure string // Failure
}

type EventKind int

const (
	EvKeysLoaded EventKind = iota
	EvValueLoaded
	EvWriteOk
	EvDeleteOk
	EvFailure
)

// KeyType pairs a key with its probed type, the unit KeysLoaded carries.
type KeyType struct {
	Key  string
	Type redisstore.DataType
}

// Bus owns the two channels and the worker goroutine draining Commands.
type Bus struct {
	Commands chan Command
	Events   chan Event

	store  redisstore.Store
	cancel context.CancelFunc
	closed chan struct{}
}

// NewBus creates a Bus with bounded channels and starts the worker loop
// against store. Cancel via Close.
func NewBus(store redisstore.Store) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bus{
		Commands: make(chan Command, DefaultCapacity),
		Events:   make(chan Event, DefaultCapacity),
		store:    store,
		cancel:   cancel,
		closed:   make(chan struct{}),
	}
	go b.run(ctx)
	return b
}

// run serially drains Commands, issuing at most one outstanding datastore
// call at a time, so replies on Events preserve the order commands were
// issued (P11).
func (b *Bus) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-b.Commands:
			if !ok {
				return
			}
			b.handle(ctx, cmd)
		}
	}
}

func (b *Bus) handle(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CmdEnumerate:
		keys, err := b.store.Enumerate(ctx, cmd.Pattern)
		if err != nil {
			b.emit(Event{Kind: EvFailure, Failure: err.Error()})
			return
		}
		kts := make([]KeyType, 0, len(keys))
		for _, k := range keys {
			dt, err := b.store.ProbeType(ctx, k)
			if err != nil {
				b.emit(Event{Kind: EvFailure, Failure: err.Error()})
				continue
			}
			kts = append(kts, KeyType{Key: k, Type: dt})
		}
		b.emit(Event{Kind: EvKeysLoaded, Keys: kts})

	case CmdFetch:
		dt, err := b.store.ProbeType(ctx, cmd.Key)
		if err != nil {
			b.emit(Event{Kind: EvFailure, Failure: err.Error()})
			return
		}
		val, err := b.store.Fetch(ctx, cmd.Key, dt)
		if err != nil {
			b.emit(Event{Kind: EvFailure, Failure: err.Error()})
			return
		}
		ttl, err := b.store.TTL(ctx, cmd.Key)
		if err != nil {
			b.emit(Event{Kind: EvFailure, Failure: err.Error()})
			return
		}
		b.emit(Event{Kind: EvValueLoaded, Key: cmd.Key, Value: val, TTL: ttl, Type: dt})

	case CmdWriteString:
		if err := b.store.WriteString(ctx, cmd.Key, cmd.Bytes); err != nil {
			b.emit(Event{Kind: EvFailure, Failure: err.Error()})
			return
		}
		b.emit(Event{Kind: EvWriteOk, Key: cmd.Key})

	case CmdDelete:
		if err := b.store.Delete(ctx, cmd.Key); err != nil {
			b.emit(Event{Kind: EvFailure, Failure: err.Error()})
			return
		}
		b.emit(Event{Kind: EvDeleteOk, Key: cmd.Key})
	}
}

// emit blocks until the Events channel has room: a full Events channel
// means the UI is stalled, and the worker is specified to block rather than
// drop replies.
func (b *Bus) emit(ev Event) {
	if ev.Kind == EvFailure {
		log.Printf("worker: datastore failure: %s", ev.Failure)
	}
	b.Events <- ev
}

// TrySend attempts a non-blocking send on Commands, used for user-navigation
// Fetches and non-critical refreshes per the backpressure policy in §4.6. It
// reports whether the command was accepted.
func (b *Bus) TrySend(cmd Command) bool {
	select {
	case b.Commands <- cmd:
		return true
	default:
		return false
	}
}

// Send blocks until the command is accepted or the bus is closed.
func (b *Bus) Send(cmd Command) error {
	select {
	case b.Commands <- cmd:
		return nil
	case <-b.closed:
		return fmt.Errorf("worker bus closed")
	}
}

// Close cancels the worker task and releases the datastore connection.
func (b *Bus) Close() error {
	b.cancel()
	close(b.closed)
	return b.store.Close()
}
