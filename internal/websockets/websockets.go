package websockets

import (
	"agency/config"
	"agency/internal/events"
	"agency/internal/logger"
	"agency/internal/metrics"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeSubscribe = "subscribe"
	MessageTypeWelcome   = "welcome"

	SEND_BUFFER   = 64
	WRITE_TIMEOUT = 10 * time.Second
	PONG_TIMEOUT  = 60 * time.Second
	PING_INTERVAL = 30 * time.Second
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Channels  []string       `json:"channels,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID       string
	conn     *websocket.Conn
	send     chan Message
	channels map[string]bool
	mu       sync.RWMutex
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan Message, SEND_BUFFER),
	}
}

// wants reports whether the client listens on channel. A client that never subscribed
// receives everything.
func (c *Client) wants(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channels == nil || c.channels[channel]
}

func (c *Client) subscribe(channels []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels = map[string]bool{events.ChannelBroadcast: true}
	for _, channel := range channels {
		c.channels[channel] = true
	}
}

// Manager relays event bus traffic to connected browser clients.
type Manager struct {
	clients     map[*Client]bool
	mu          sync.RWMutex
	unsubscribe []func()
	log         logger.Logger
}

func New(eventBus *events.EventBus, cfg config.Config) (*Manager, error) {
	log := logger.New("websockets")
	if eventBus == nil {
		return nil, log.Function("New").ErrMsg("event bus is nil")
	}

	manager := &Manager{
		clients: map[*Client]bool{},
		log:     log,
	}

	for _, channel := range events.Channels {
		manager.unsubscribe = append(manager.unsubscribe, eventBus.Subscribe(channel, manager.relay))
	}

	log.Function("New").Info("Websocket manager ready", "channels", len(events.Channels), "version", cfg.GeneralVersion)
	return manager, nil
}

func (m *Manager) relay(event events.Event) {
	m.Broadcast(Message{
		ID:        event.ID,
		Type:      event.Type,
		Channel:   event.Channel,
		Action:    event.Action,
		UserID:    event.UserID,
		Data:      event.Data,
		Timestamp: event.Timestamp,
	})
}

// Broadcast queues message for every client listening on its channel. Clients whose
// buffer is full are dropped rather than stalling the event bus.
func (m *Manager) Broadcast(message Message) {
	m.mu.RLock()
	var slow []*Client
	for client := range m.clients {
		if !client.wants(message.Channel) {
			continue
		}
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range slow {
		m.log.Function("Broadcast").Warn("Dropping slow websocket client", "clientID", client.ID)
		m.unregister(client)
	}
}

// deliver queues message for a single client that is still registered.
func (m *Manager) deliver(client *Client, message Message) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.clients[client] {
		return false
	}
	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

func (m *Manager) register(client *Client) {
	m.mu.Lock()
	m.clients[client] = true
	m.mu.Unlock()
	metrics.WebsocketClients.Inc()
}

func (m *Manager) unregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.clients[client] {
		return
	}
	delete(m.clients, client)
	close(client.send)
	metrics.WebsocketClients.Dec()
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// HandleWebSocket serves one connection until the client goes away.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := newClient(conn)
	m.register(client)
	defer m.unregister(client)

	m.deliver(client, Message{ID: uuid.NewString(), Type: MessageTypeWelcome, Channels: events.Channels, Timestamp: time.Now()})

	done := make(chan struct{})
	go m.writePump(client, done)
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("Websocket closed unexpectedly", "clientID", client.ID, "error", err)
			}
			return
		}

		var message Message
		if err := json.Unmarshal(payload, &message); err != nil {
			log.Warn("Ignoring malformed websocket message", "clientID", client.ID)
			continue
		}
		if reply, ok := m.handleMessage(client, message); ok {
			m.deliver(client, reply)
		}
	}
}

func (m *Manager) handleMessage(client *Client, message Message) (Message, bool) {
	switch message.Type {
	case MessageTypePing:
		return Message{ID: uuid.NewString(), Type: MessageTypePong, Timestamp: time.Now()}, true
	case MessageTypeSubscribe:
		channels := slices.DeleteFunc(slices.Clone(message.Channels), func(channel string) bool {
			return !slices.Contains(events.Channels, channel)
		})
		client.subscribe(channels)
		return Message{ID: uuid.NewString(), Type: MessageTypeSubscribe, Channels: channels, Timestamp: time.Now()}, true
	default:
		return Message{}, false
	}
}

func (m *Manager) writePump(client *Client, done <-chan struct{}) {
	log := m.log.Function("writePump")
	ticker := time.NewTicker(PING_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case message, ok := <-client.send:
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = client.conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if err := client.conn.WriteJSON(message); err != nil {
				log.Warn("Failed to write websocket message", "clientID", client.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for client := range m.clients {
		delete(m.clients, client)
		close(client.send)
		metrics.WebsocketClients.Dec()
	}
}
