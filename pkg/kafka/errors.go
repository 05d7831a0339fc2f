package kafka

import (
	"errors"
	"fmt"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrConsumerClosed = errors.New("kafka consumer is closed")
	ErrInvalidMessage = errors.New("invalid message")
	ErrEmptyKey       = errors.New("message key cannot be empty")
	ErrEmptyValue     = errors.New("message value cannot be empty")
)

// PublishError reports a message that could not be written to its topic.
// DeadLettered is set when the message reached the DLQ instead.
type PublishError struct {
	Topic        string
	Key          string
	DeadLettered bool
	Err          error
}

func (e *PublishError) Error() string {
	if e.DeadLettered {
		return fmt.Sprintf("publish to %s (key %s) failed, message sent to DLQ: %v", e.Topic, e.Key, e.Err)
	}
	return fmt.Sprintf("publish to %s (key %s) failed: %v", e.Topic, e.Key, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// PermanentError marks a message that can never be processed. The consumer
// does not retry it.
type PermanentError struct {
	Err error
}

func Permanent(err error) error {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	return "permanent: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}
