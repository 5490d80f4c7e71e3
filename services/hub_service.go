package services

import (
	"encoding/json"
	"log"
	"sync"

	"blogapi/models"
)

// HubService fans post events out to every connected feed client. All
// mutation of the client set happens on the Run goroutine.
type HubService struct {
	hub      *models.Hub
	stopOnce sync.Once
}

func NewHubService() *HubService {
	hub := models.NewHub()
	service := &HubService{hub: hub}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)

		case <-h.hub.Quit:
			for client := range h.hub.Clients {
				delete(h.hub.Clients, client)
				close(client.Send)
			}
			return
		}
	}
}

// Stop disconnects every client and ends Run. Later calls do nothing.
func (h *HubService) Stop() {
	h.stopOnce.Do(func() {
		close(h.hub.Quit)
	})
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	log.Printf("Feed client %s registered (user %d)", client.ID, client.UserID)
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; ok {
		delete(h.hub.Clients, client)
		close(client.Send)
		log.Printf("Feed client %s unregistered", client.ID)
	}
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.hub.Clients, client)
		}
	}
}

// Publish queues an event for every connected client. It never blocks the
// caller: when the broadcast queue is full the event is dropped.
func (h *HubService) Publish(messageType string, data interface{}) {
	messageBytes, err := json.Marshal(models.WSMessage{Type: messageType, Data: data})
	if err != nil {
		log.Printf("Error marshaling feed message: %v", err)
		return
	}

	select {
	case h.hub.Broadcast <- messageBytes:
	case <-h.hub.Quit:
	default:
		log.Printf("Feed queue full, dropping %s event", messageType)
	}
}
