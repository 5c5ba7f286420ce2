package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

type recordingChannel struct {
	exchange, key string
	msgs          []amqp.Publishing
	err           error
	closed        bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.exchange, c.key = exchange, key
	c.msgs = append(c.msgs, msg)

	return nil
}

func (c *recordingChannel) Close() error {
	c.closed = true

	return nil
}

func TestRabbitMQ_Publish(t *testing.T) {
	ch := &recordingChannel{}
	r := &RabbitMQ{channel: ch, exchange: "blog", routingKey: "articles", logger: zap.NewNop().Sugar()}

	article := &model.Article{ID: 3, Title: "Hello", Body: "World", Status: model.StatusDraft}
	require.NoError(t, r.Publish(context.Background(), NewEvent(ActionCreated, article)))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "blog", ch.exchange)
	assert.Equal(t, "articles", ch.key)

	msg := ch.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "article.created", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, ActionCreated, got.Action)
	assert.Equal(t, int64(3), got.Article.ID)
	assert.Equal(t, "Hello", got.Article.Title)
}

func TestRabbitMQ_PublishError(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	r := &RabbitMQ{channel: ch, logger: zap.NewNop().Sugar()}

	err := r.Publish(context.Background(), NewEvent(ActionDestroyed, &model.Article{ID: 1}))

	assert.ErrorContains(t, err, "channel closed")
}

func TestRabbitMQ_Close(t *testing.T) {
	ch := &recordingChannel{}
	r := &RabbitMQ{channel: ch}

	assert.NoError(t, r.Close())
	assert.True(t, ch.closed)
}

func TestNop(t *testing.T) {
	var n Nop

	assert.NoError(t, n.Publish(context.Background(), NewEvent(ActionUpdated, &model.Article{})))
	assert.NoError(t, n.Close())
}
