package mq

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	msg, err := newPublishing(map[string]interface{}{"orderId": 7, "status": "success"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"orderId":7,"status":"success"}`, string(msg.Body))
}

func TestNewPublishingRejectsUnencodable(t *testing.T) {
	_, err := newPublishing(make(chan int), time.Now())
	assert.Error(t, err)
}
