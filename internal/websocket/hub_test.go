package websocket

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubForTest() *Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHub(log)
}

func TestTranslationsChanged_BroadcastsToClients(t *testing.T) {
	hub := newHubForTest()
	client := &Client{ID: uuid.New().String(), send: make(chan []byte, 4)}
	hub.registerClient(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.TranslationsChanged("it_IT", []int64{1, 2, 3})

	select {
	case message := <-hub.broadcast:
		hub.broadcastMessage(message)
	case <-time.After(time.Second):
		t.Fatal("No event queued")
	}

	select {
	case payload := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "translations.changed", event.Type)
		data, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "it_IT", data["locale"])
	case <-time.After(time.Second):
		t.Fatal("Client received no event")
	}
}

func TestBroadcast_DropsWhenClientBufferFull(t *testing.T) {
	hub := newHubForTest()
	client := &Client{ID: uuid.New().String(), send: make(chan []byte)}
	hub.registerClient(client)

	// Nothing reads client.send; the hub must not block.
	done := make(chan struct{})
	go func() {
		hub.broadcastMessage([]byte(`{"type":"x"}`))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a slow consumer")
	}
}

func TestUnregister_ClosesSendChannel(t *testing.T) {
	hub := newHubForTest()
	client := &Client{ID: uuid.New().String(), send: make(chan []byte, 1)}
	hub.registerClient(client)
	hub.unregisterClient(client)

	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-client.send
	assert.False(t, open)

	// Unregistering twice is harmless.
	hub.unregisterClient(client)
}
