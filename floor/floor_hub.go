package floor

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/lounge-floor/models"
)

// Event types
const (
	EventFloorUpdate       = "floor_update"
	EventReservationUpdate = "reservation_update"
	EventOrderUpdate       = "order_update"
	EventTableUpdate       = "table_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// FloorHub menampung semua client dashboard lantai dan channel untuk
// broadcast
type FloorHub struct {
	clients map[*websocket.Conn]string // conn -> label (mis. remote addr)
	mutex   sync.Mutex
}

var floorHub = FloorHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set
func RegisterClient(conn *websocket.Conn, label string) {
	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()
	floorHub.clients[conn] = label
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()
	delete(floorHub.clients, conn)
	conn.Close()
}

// BroadcastFloorUpdate -> snapshot penuh status semua meja + ringkasan
func BroadcastFloorUpdate(statuses []models.TableStatus, summary map[string]int) {
	broadcast(Message{
		Event: EventFloorUpdate,
		Data: map[string]interface{}{
			"statuses": statuses,
			"summary":  summary,
		},
	})
}

// BroadcastReservationUpdate -> perubahan satu reservasi
func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationUpdate,
		Data:  reservation,
	})
}

// BroadcastOrderUpdate -> perubahan satu order
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastTableUpdate -> perubahan data meja (bukan statusnya)
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	floorHub.mutex.Lock()
	defer floorHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range floorHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
