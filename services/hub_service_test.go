package services

import (
	"encoding/json"
	"testing"
	"time"

	"blogapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesRegisteredClients(t *testing.T) {
	hub := NewHubService()
	defer hub.Stop()

	first := models.NewClient(hub.GetHub(), nil, 0)
	second := models.NewClient(hub.GetHub(), nil, 7)
	hub.GetHub().Register <- first
	hub.GetHub().Register <- second

	hub.Publish(models.EventPostDeleted, map[string]uint{"id": 3})

	for _, client := range []*models.Client{first, second} {
		select {
		case raw := <-client.Send:
			var msg models.WSMessage
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, models.EventPostDeleted, msg.Type)
			assert.Equal(t, map[string]interface{}{"id": float64(3)}, msg.Data)
		case <-time.After(time.Second):
			t.Fatalf("client %s got no message", client.ID)
		}
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHubService()
	defer hub.Stop()

	client := models.NewClient(hub.GetHub(), nil, 0)
	hub.GetHub().Register <- client
	hub.GetHub().Unregister <- client

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubPublishAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHubService()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(models.EventPostCreated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after stop")
	}
}

func TestHubStopTwice(t *testing.T) {
	hub := NewHubService()
	hub.Stop()
	assert.NotPanics(t, hub.Stop)
}
