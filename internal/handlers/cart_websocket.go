package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"swiftcart/internal/models"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 16
)

// Types d'événements poussés aux clients
const (
	EventConnected      = "connected"
	EventCartUpdated    = "cart_updated"
	EventNotice         = "notice"
	EventOrderConfirmed = "order_confirmed"
	EventStoreSynced    = "store_synced"
)

type wsEvent struct {
	Type         string               `json:"type"`
	Message      string               `json:"message,omitempty"`
	Cart         *cartResponse        `json:"cart,omitempty"`
	Confirmation *models.Confirmation `json:"confirmation,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pousse l'état du panier aux pages connectées en WebSocket.
// Il implémente session.Presenter.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	last    []byte
}

// NewHub crée le hub ; allowedOrigins vide accepte toutes les origines
func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{log: log, clients: make(map[*wsClient]struct{})}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, o := range allowedOrigins {
				if o == origin || o == "*" {
					return true
				}
			}
			return false
		},
	}
	return h
}

func (h *Hub) Refresh(view models.View) {
	resp := newCartResponse(view)
	data := h.encode(wsEvent{Type: EventCartUpdated, Cart: &resp})
	if data == nil {
		return
	}
	h.mu.Lock()
	h.last = data
	h.mu.Unlock()
	h.broadcast(data)
}

func (h *Hub) Notify(message string) {
	h.broadcast(h.encode(wsEvent{Type: EventNotice, Message: message}))
}

func (h *Hub) Confirmed(conf models.Confirmation) {
	h.broadcast(h.encode(wsEvent{Type: EventOrderConfirmed, Message: conf.Message, Confirmation: &conf}))
}

// StoreEvent relaie un événement du stockage (updated, cleared) : la copie durable est à jour
func (h *Hub) StoreEvent(event string) {
	h.broadcast(h.encode(wsEvent{Type: EventStoreSynced, Message: event}))
}

// Clients retourne le nombre de connexions actives
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close ferme toutes les connexions
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		close(cl.send)
		delete(h.clients, cl)
	}
}

// CartWebSocket gère la synchronisation temps réel du panier
// 🔌 GET /api/cart/ws
func (h *Hub) CartWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("❌ Erreur upgrade WebSocket", zap.Error(err))
		return
	}

	cl := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}

	cl.send <- h.encode(wsEvent{Type: EventConnected, Message: "Synchronisation panier activée"})

	h.mu.Lock()
	if h.last != nil {
		cl.send <- h.last
	}
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(cl)
	h.readLoop(cl)
}

// readLoop consomme les messages entrants pour détecter la fermeture
func (h *Hub) readLoop(cl *wsClient) {
	defer h.drop(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(cl *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("❌ Erreur envoi WebSocket", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	if data == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			// client trop lent : on le déconnecte
			close(cl.send)
			delete(h.clients, cl)
		}
	}
}

func (h *Hub) drop(cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; ok {
		close(cl.send)
		delete(h.clients, cl)
	}
}

func (h *Hub) encode(ev wsEvent) []byte {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("❌ Encodage événement WebSocket", zap.Error(err))
		return nil
	}
	return data
}
