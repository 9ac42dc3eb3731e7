package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type MessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

var (
	clients   = make(map[uuid.UUID]*websocket.Conn)
	clientsMu sync.RWMutex

	Register   = make(chan *Client)
	Unregister = make(chan *Client)
	Broadcast  = make(chan *models.Message)
)

// RunHub owns the clients map. Messages are already persisted by the
// time they hit Broadcast; delivery here is best effort.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-Broadcast:
			deliver(message)
		}
	}
}

func deliver(message *models.Message) {
	var participantIDs []uuid.UUID
	err := database.DB.
		Table("conversation_participants").
		Where("conversation_id = ?", message.ConversationID).
		Pluck("user_id", &participantIDs).Error
	if err != nil {
		log.Printf("hub: failed to load participants for conversation %s: %v", message.ConversationID, err)
		return
	}

	var stale []uuid.UUID
	clientsMu.RLock()
	for _, participantID := range participantIDs {
		if participantID == message.SenderID {
			continue
		}
		conn, ok := clients[participantID]
		if !ok {
			continue
		}
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("hub: dropping client %s: %v", participantID, err)
			conn.Close()
			stale = append(stale, participantID)
		}
	}
	clientsMu.RUnlock()

	if len(stale) > 0 {
		clientsMu.Lock()
		for _, id := range stale {
			delete(clients, id)
		}
		clientsMu.Unlock()
	}
}
