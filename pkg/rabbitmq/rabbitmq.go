package rabbitmq

import (
	"context"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func (c *connectionImpl) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.isRetrying = false
}

func (c *connectionImpl) IsReady() bool {
	return c.conn != nil && !c.conn.IsClosed()
}

func (c *connectionImpl) IsClosed() bool {
	return !c.IsReady() && !c.isRetrying
}

func (c *connectionImpl) Channel() (IChannel, error) {
	raw, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	ch := &channelImpl{conn: c, ch: raw}
	ch.reopenOnReconnect()
	return ch, nil
}

// dialLoop retries amqp.Dial until it succeeds or stop is closed.
// The won connection is handed over on the returned channel.
func (c *connectionImpl) dialLoop(stop <-chan struct{}) <-chan *amqp.Connection {
	out := make(chan *amqp.Connection)
	go func() {
		for attempt := 1; ; attempt++ {
			select {
			case <-stop:
				return
			default:
			}
			log.Printf("rabbitmq: dialing broker, attempt %d", attempt)
			conn, err := amqp.Dial(c.url)
			if err != nil {
				log.Printf("rabbitmq: dial failed: %v", err)
				time.Sleep(RetryConnectionDelay)
				continue
			}
			select {
			case out <- conn:
			case <-stop:
				conn.Close()
			}
			return
		}
	}()
	return out
}

// connect dials with a deadline. Used for the initial connection, where
// a dead broker should fail startup instead of blocking it.
func (c *connectionImpl) connect() error {
	stop := make(chan struct{})
	select {
	case conn := <-c.dialLoop(stop):
		c.adopt(conn)
		return nil
	case <-time.After(RetryConnectionTimeout):
		close(stop)
		return ErrConnectionTimeout
	}
}

// reconnect redials after a broker-side close. With retryWithoutTimeout
// it keeps dialing until the broker comes back.
func (c *connectionImpl) reconnect() error {
	if !c.retryWithoutTimeout {
		return c.connect()
	}
	c.adopt(<-c.dialLoop(make(chan struct{})))
	return nil
}

func (c *connectionImpl) adopt(conn *amqp.Connection) {
	c.conn = conn
	c.watchClose()
}

// watchClose redials when the broker drops the connection and then tells
// every registered channel to reopen itself.
func (c *connectionImpl) watchClose() {
	closed := make(chan *amqp.Error)
	c.conn.NotifyClose(closed)
	go func() {
		for err := range closed {
			if err == nil {
				continue
			}
			c.conn = nil
			c.isRetrying = true
			log.Printf("rabbitmq: connection lost: %v", err)
			if err := c.reconnect(); err != nil {
				log.Printf("rabbitmq: redial failed: %v", err)
			}
			for _, sub := range c.reconnects {
				sub <- true
			}
			c.isRetrying = false
			return
		}
	}()
}

func (c *connectionImpl) notifyReconnect(receiver chan bool) <-chan bool {
	c.reconnects = append(c.reconnects, receiver)
	return receiver
}

func (ch *channelImpl) QueueDeclare(queue QueueArgs) (amqp.Queue, error) {
	return ch.ch.QueueDeclare(queue.spread())
}

func (ch *channelImpl) Publish(ctx context.Context, publish PublishArgs) error {
	return ch.ch.PublishWithContext(publish.spread(ctx))
}

func (ch *channelImpl) Close() error {
	return ch.ch.Close()
}

// reopenOnReconnect swaps in a fresh channel whenever the parent
// connection has been redialed.
func (ch *channelImpl) reopenOnReconnect() {
	redialed := ch.conn.notifyReconnect(make(chan bool))
	go func() {
		for range redialed {
			raw, err := ch.conn.conn.Channel()
			if err != nil {
				log.Printf("rabbitmq: reopening channel failed: %v", err)
				continue
			}
			_ = ch.ch.Close()
			ch.ch = raw
		}
	}()
}
