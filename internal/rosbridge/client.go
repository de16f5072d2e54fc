package rosbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cxd309/hoopshot/internal/metrics"
)

const writeWait = 5 * time.Second

// Client is a rosbridge v2 websocket connection. Reads must come from a
// single goroutine; writes may come from any.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex // serialises writes
}

// Dial connects to the rosbridge server at url.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) send(m Message) error {
	if m.ID == "" {
		m.ID = m.Op + ":" + uuid.NewString()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("%s %s: %w", m.Op, m.Topic, err)
	}
	metrics.RosbridgeMessage(metrics.Outbound)
	return nil
}

// Subscribe asks the server to forward messages published on topic.
func (c *Client) Subscribe(topic, msgType string) error {
	return c.send(Message{Op: OpSubscribe, Topic: topic, Type: msgType})
}

// Unsubscribe stops forwarding of topic.
func (c *Client) Unsubscribe(topic string) error {
	return c.send(Message{Op: OpUnsubscribe, Topic: topic})
}

// Advertise declares that the client publishes msgType on topic.
func (c *Client) Advertise(topic, msgType string) error {
	return c.send(Message{Op: OpAdvertise, Topic: topic, Type: msgType})
}

// Publish sends msg on topic.
func (c *Client) Publish(topic string, msg any) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return c.send(Message{Op: OpPublish, Topic: topic, Msg: raw})
}

// Read blocks until the next message arrives.
func (c *Client) Read() (Message, error) {
	var m Message
	if err := c.conn.ReadJSON(&m); err != nil {
		return Message{}, err
	}
	metrics.RosbridgeMessage(metrics.Inbound)
	return m, nil
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.mu.Unlock()
	return c.conn.Close()
}
