package events

import (
	"agency/config"
	"agency/internal/database"
	"agency/internal/logger"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const channelPrefix = "agency:events:"

// Channels used across the service.
const (
	ChannelBroadcast      = "broadcast"
	ChannelCustomers      = "customers"
	ChannelDocuments      = "documents"
	ChannelCommunications = "communications"
	ChannelPayments       = "payments"
)

var Channels = []string{
	ChannelBroadcast,
	ChannelCustomers,
	ChannelDocuments,
	ChannelCommunications,
	ChannelPayments,
}

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Handler func(Event)

// EventBus fans events out to local subscribers. With a valkey client, events travel through
// valkey pub/sub so every instance of the service sees them; without one they are delivered
// in-process.
type EventBus struct {
	client   database.CacheClient
	handlers map[string]map[int]Handler
	nextID   int
	mu       sync.RWMutex
	cancel   context.CancelFunc
	done     chan struct{}
	log      logger.Logger
}

func New(client database.CacheClient, config config.Config) *EventBus {
	log := logger.New("events").Function("New")

	bus := &EventBus{
		client:   client,
		handlers: map[string]map[int]Handler{},
		log:      logger.New("events"),
	}

	if client == nil {
		log.Info("No event cache configured, delivering events in-process", "version", config.GeneralVersion)
		return bus
	}

	ctx, cancel := context.WithCancel(context.Background())
	bus.cancel = cancel
	bus.done = make(chan struct{})
	go bus.receive(ctx)

	return bus
}

func (b *EventBus) receive(ctx context.Context) {
	defer close(b.done)
	log := b.log.Function("receive")

	cmd := b.client.B().Psubscribe().Pattern(channelPrefix + "*").Build()
	err := b.client.Receive(ctx, cmd, func(msg valkey.PubSubMessage) {
		var event Event
		if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
			log.Er("failed to decode event", err, "channel", msg.Channel)
			return
		}
		b.dispatch(strings.TrimPrefix(msg.Channel, channelPrefix), event)
	})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription ended", err)
	}
}

// Publish sends event on channel. The channel is recorded on the event.
func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	event.Channel = channel
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if b.client == nil {
		b.dispatch(channel, event)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to encode event", err, "channel", channel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := b.client.B().Publish().Channel(channelPrefix + channel).Message(string(payload)).Build()
	if err := b.client.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe registers handler for channel and returns a function that removes it.
// Handlers run on the delivering goroutine and must not block.
func (b *EventBus) Subscribe(channel string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[channel] == nil {
		b.handlers[channel] = map[int]Handler{}
	}
	id := b.nextID
	b.nextID++
	b.handlers[channel][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[channel], id)
	}
}

func (b *EventBus) dispatch(channel string, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[channel]))
	for _, handler := range b.handlers[channel] {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (b *EventBus) Close() error {
	if b.cancel != nil {
		b.cancel()
		<-b.done
	}
	return nil
}
