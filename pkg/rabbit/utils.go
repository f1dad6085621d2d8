package rabbit

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message represents a consumed message. It provides access to the payload
// and transport headers and to manual acknowledgment.
type Message interface {
	AckMsg() error
	NackMsg(requeue bool) error
	Body() []byte
	Header() map[string]interface{}
}

// ConsumerMessage implements Message on top of an AMQP delivery.
type ConsumerMessage struct {
	body     []byte
	delivery *amqp.Delivery
}

// consumeQueue consumes messages from the named queue and forwards them to the
// returned channel. The channel is closed when consumption stops due to
// context cancellation or shutdown. Includes automatic re-establishment of the
// consumer when the underlying channel closes.
func (rb *Rabbit) consumeQueue(ctx context.Context, wg *sync.WaitGroup, queueName string) <-chan Message {
	outChan := make(chan Message, 100)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(outChan)
	outerLoop:
		for {
			select {
			case <-rb.shutdownSignal:
				rb.logger.Info("consumer is shutting down due to shutdown signal", nil, nil)
				return
			case <-ctx.Done():
				rb.logger.Info("consumer is shutting down due to context cancellation", ctx.Err(), nil)
				return
			default:
				rb.mu.RLock()
				msgs, err := rb.Channel.Consume(
					queueName,
					"",    // consumer
					false, // autoAck
					false, // exclusive
					false, // noLocal
					false, // noWait
					nil,   // args
				)
				rb.mu.RUnlock()

				if err != nil {
					rb.logger.Error("error in establishing consumer for rabbit", err, map[string]interface{}{
						"queue_name": queueName,
					})
					time.Sleep(100 * time.Millisecond)
					continue
				}

				for {
					select {
					case <-ctx.Done():
						rb.logger.Info("consumer is shutting down due to context cancellation", ctx.Err(), nil)
						return
					case <-rb.shutdownSignal:
						rb.logger.Info("consumer is shutting down due to shutdown signal", nil, nil)
						return
					case msg, ok := <-msgs:
						if !ok {
							continue outerLoop
						}
						rb.logger.Debug("message consumed from rabbit", nil, map[string]interface{}{
							"queue_name": queueName,
						})
						outChan <- &ConsumerMessage{
							body:     msg.Body,
							delivery: &msg,
						}
					}
				}
			}
		}
	}()
	return outChan
}

// Consume starts consuming from the queue specified in the configuration.
func (rb *Rabbit) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return rb.consumeQueue(ctx, wg, rb.cfg.Channel.QueueName)
}

// ConsumeDLQ starts consuming from the configured dead-letter queue.
func (rb *Rabbit) ConsumeDLQ(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return rb.consumeQueue(ctx, wg, rb.cfg.DeadLetter.QueueName)
}

// Publish sends a message to the configured exchange and routing key. The
// optional headers map is attached as transport headers; it carries metadata
// such as delivery-attempt counts or trace context, never business payload.
func (rb *Rabbit) Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error {

	select {
	case <-ctx.Done():
		rb.logger.Error("context error for publishing msg into rabbit", ctx.Err(), nil)
		return ctx.Err()
	default:
		var header amqp.Table
		if len(headers) > 0 && headers[0] != nil {
			header = amqp.Table(headers[0])
		}

		rb.mu.RLock()
		err := rb.Channel.PublishWithContext(ctx,
			rb.cfg.Channel.ExchangeName,
			rb.cfg.Channel.RoutingKey,
			false,
			false,
			amqp.Publishing{
				Headers:     header,
				ContentType: rb.cfg.Channel.ContentType,
				Body:        msg,
			},
		)
		rb.mu.RUnlock()

		if err == nil {
			return nil
		}
		rb.logger.Error("error in publishing msg into rabbit", err, nil)
		return err
	}
}

func (rb *ConsumerMessage) AckMsg() error {
	return rb.delivery.Ack(false)
}

func (rb *ConsumerMessage) NackMsg(requeue bool) error {
	return rb.delivery.Nack(false, requeue)
}

func (rb *ConsumerMessage) Body() []byte {
	return rb.body
}

// Header returns the transport headers associated with the message.
func (rb *ConsumerMessage) Header() map[string]interface{} {
	return rb.delivery.Headers
}
