package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientC, err := hub.Register(20, nil)
	require.NoError(t, err)

	assert.True(t, hub.IsOnline(10))
	assert.True(t, hub.IsOnline(20))
	assert.False(t, hub.IsOnline(30))

	hub.Broadcast(10, `{"type":"level_up"}`)

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"level_up"}`, string(msg))
		default:
			t.Fatal("expected a buffered message for user 10")
		}
	}
	select {
	case <-clientC.Send:
		t.Fatal("user 20 must not receive user 10 events")
	default:
	}

	hub.UnregisterClient(clientA)
	hub.UnregisterClient(clientB)
	assert.False(t, hub.IsOnline(10))
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(1, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll("system notice")

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "system notice", string(msg))
		default:
			t.Fatal("expected every client to get the broadcast")
		}
	}
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(5, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(5, nil)
	assert.Error(t, err)

	// Other users are unaffected.
	_, err = hub.Register(6, nil)
	assert.NoError(t, err)
}

func TestHub_WiringDeliversRedisEvents(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	notifier := NewNotifier(rdb)
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(123, nil)
	require.NoError(t, err)

	// Give the pattern subscription a moment to establish.
	assert.Eventually(t, func() bool {
		require.NoError(t, notifier.PublishUser(context.Background(), 123, `{"type":"booking_requested"}`))
		select {
		case msg := <-client.Send:
			return string(msg) == `{"type":"booking_requested"}`
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)
}

func TestUserChannel(t *testing.T) {
	assert.Equal(t, "notifications:user:42", UserChannel(42))
	assert.Equal(t, fmt.Sprintf("notifications:user:%d", 0), UserChannel(0))
}

func TestClient_TrySendDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(7, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("fill"))
	}

	// Buffer is full: the message is dropped instead of blocking the hub.
	client.TrySend([]byte("overflow"))

	drained := 0
	for {
		select {
		case msg := <-client.Send:
			drained++
			assert.Equal(t, "fill", string(msg))
		default:
			assert.Equal(t, cap(client.Send), drained)
			return
		}
	}
}
