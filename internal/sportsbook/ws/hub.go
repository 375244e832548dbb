package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/sportsbook/pubsub"
)

const (
	// sendBuffer é quantos updates um cliente pode acumular antes de ser derrubado
	sendBuffer = 32
	writeWait  = 5 * time.Second
)

// Hub gerencia conexões WebSocket e assinaturas por tópico.
// Broadcast nunca bloqueia: cada cliente tem fila própria e um writer dedicado.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// topic -> set of clients
	subs map[string]map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
}

// enqueue não bloqueia; false = fila cheia ou cliente encerrado
func (c *client) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// close derruba a conexão; o loop de leitura do HandleWS termina em seguida
func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writeLoop é o único writer da conexão (gorilla/websocket não aceita writers concorrentes)
func (c *client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				c.close()
				return
			}
		}
	}
}

func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*client]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão: subscribe/unsubscribe em
// tópicos e pong para ping
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("ws upgrade", zap.Error(err))
		return
	}
	c := newClient(conn)
	go c.writeLoop()
	defer h.drop(c)

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "subscribe":
			if msg.Topic == "" {
				continue
			}
			h.mu.Lock()
			if _, ok := h.subs[msg.Topic]; !ok {
				h.subs[msg.Topic] = make(map[*client]struct{})
			}
			h.subs[msg.Topic][c] = struct{}{}
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			h.removeLocked(msg.Topic, c)
			h.mu.Unlock()
		case "ping":
			b, _ := json.Marshal(map[string]string{"type": "pong"})
			c.enqueue(b)
		}
	}
}

// drop tira o cliente de todas as assinaturas e fecha a conexão
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	for topic := range h.subs {
		h.removeLocked(topic, c)
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) removeLocked(topic string, c *client) {
	if m, ok := h.subs[topic]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, topic)
		}
	}
}

// Subscribers conta conexões inscritas no tópico
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Broadcast enfileira o update para os inscritos no tópico e em "*".
// Cliente com a fila cheia (parou de ler) é derrubado.
func (h *Hub) Broadcast(update pubsub.Update) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.subs[update.Topic])+len(h.subs[TopicAll]))
	for c := range h.subs[update.Topic] {
		targets = append(targets, c)
	}
	if update.Topic != TopicAll {
		for c := range h.subs[TopicAll] {
			if _, dup := h.subs[update.Topic][c]; !dup {
				targets = append(targets, c)
			}
		}
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, err := json.Marshal(update)
	if err != nil {
		h.log.Warn("ws marshal", zap.Error(err))
		return
	}
	for _, c := range targets {
		if !c.enqueue(b) {
			h.log.Warn("ws slow client dropped", zap.String("remote", c.conn.RemoteAddr().String()))
			h.drop(c)
		}
	}
}
