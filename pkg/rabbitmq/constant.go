package rabbitmq

import (
	"errors"
	"time"
)

const (
	RetryConnectionDelay   = 2 * time.Second
	RetryConnectionTimeout = 20 * time.Second
	ContentTypeJSON        = "application/json"
)

// ErrConnectionTimeout is returned when the initial connection attempt times out.
var ErrConnectionTimeout = errors.New("rabbitmq: connection timeout")
