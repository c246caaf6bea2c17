package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/service"
)

func signal(kind service.SignalKind) service.Signal {
	return service.Signal{At: time.Now().UTC(), Kind: kind}
}

func TestBusFanOut(t *testing.T) {
	b := New()
	defer b.Close()

	first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	b.Publish(signal(service.SignalRecordAppended))

	for _, ch := range []<-chan service.Signal{first, second} {
		select {
		case sig := <-ch:
			assert.Equal(t, service.SignalRecordAppended, sig.Kind)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive signal")
		}
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	ch, cancel := b.Subscribe()
	cancel()

	// The channel is closed; publishes after cancel go nowhere.
	b.Publish(signal(service.SignalStoreCleared))
	_, open := <-ch
	assert.False(t, open)

	// Cancel is idempotent.
	cancel()
}

func TestBusPublishNeverBlocks(t *testing.T) {
	b := New()
	defer b.Close()

	// A subscriber that never drains must not stall publishers.
	_, cancel := b.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			b.Publish(signal(service.SignalRecordAppended))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBusDuplicateSignalsAreHarmless(t *testing.T) {
	b := New()
	defer b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()

	b.Publish(signal(service.SignalRecordAppended))
	b.Publish(signal(service.SignalRecordAppended))

	// Both arrive; a correct subscriber just re-reads twice.
	for i := 0; i < 2; i++ {
		select {
		case sig := <-ch:
			assert.Equal(t, service.SignalRecordAppended, sig.Kind)
		case <-time.After(time.Second):
			t.Fatal("missing duplicate signal")
		}
	}
}

func TestBusClose(t *testing.T) {
	b := New()

	ch, cancel := b.Subscribe()
	defer cancel()

	b.Close()
	_, open := <-ch
	require.False(t, open)

	// Subscribing after close yields a closed channel.
	late, cancelLate := b.Subscribe()
	defer cancelLate()
	_, open = <-late
	assert.False(t, open)

	// Publishing after close is a no-op.
	b.Publish(signal(service.SignalRecordAppended))
	b.Close()
}
