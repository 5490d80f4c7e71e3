package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler accepts upgrades from the listed origins; an empty list
// or "*" accepts any origin.
func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// HandleFeed godoc
// @Summary Live feed of post events over a websocket
// @Tags feed
// @Router /feed/ws [get]
func (wh *WebSocketHandler) HandleFeed(c *gin.Context) {
	var userID uint
	if identity := middleware.CurrentIdentity(c); identity != nil {
		userID = identity.UserID
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	hub := wh.hubService.GetHub()
	client := models.NewClient(hub, conn, userID)

	select {
	case hub.Register <- client:
	case <-hub.Quit:
		conn.Close()
		return
	}

	go wh.writePump(client)
	go wh.readPump(client)
}

func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		select {
		case client.Hub.Unregister <- client:
		case <-client.Hub.Quit:
		}
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error for client %s: %v", client.ID, err)
			}
			return
		}

		var wsMessage models.WSMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling feed message from client %s: %v", client.ID, err)
			continue
		}

		switch wsMessage.Type {
		case "client_connect":
			responseBytes, err := json.Marshal(models.WSMessage{
				Type: "client_connected",
				Data: map[string]string{"client_id": client.ID},
			})
			if err != nil {
				log.Printf("Error marshaling 'client_connected' for client %s: %v", client.ID, err)
				continue
			}

			select {
			case client.Send <- responseBytes:
			default:
				log.Printf("Send buffer full for client %s, closing connection", client.ID)
				return
			}

		default:
			log.Printf("Unknown message type '%s' from client %s", wsMessage.Type, client.ID)
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error sending ping to client %s: %v", client.ID, err)
				return
			}
		}
	}
}
