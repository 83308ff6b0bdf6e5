package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"table_order/internal/models"

	"github.com/go-redis/redis/v8"
)

// EventsChannel carries order events between server instances.
const EventsChannel = "table_order:order_events"

var ErrSessionNotFound = errors.New("session not found")

type Client struct {
	rdb *redis.Client
}

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type SessionData struct {
	RestaurantID   uint      `json:"restaurant_id,omitempty"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	Flashes        []Flash   `json:"flashes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewClient wraps an existing connection.
func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Session management
func (c *Client) SetSession(ctx context.Context, sessionID string, data *SessionData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := c.rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, "session:"+sessionID).Err()
}

// PublishEvent fans an order event out to every subscribed instance.
func (c *Client) PublishEvent(ctx context.Context, event models.OrderEvent) error {
	payload, err := json.Marshal(event.Frame())
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return c.rdb.Publish(ctx, EventsChannel, payload).Err()
}

// SubscribeEvents delivers events published on EventsChannel to handle until
// ctx is cancelled. Malformed payloads are skipped.
func (c *Client) SubscribeEvents(ctx context.Context, handle func(models.OrderEvent)) error {
	pubsub := c.rdb.Subscribe(ctx, EventsChannel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var frame models.Frame
			if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
				continue
			}
			event := frame.Data
			event.Type = frame.Event
			handle(event)
		}
	}
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
