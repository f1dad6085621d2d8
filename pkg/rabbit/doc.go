// Package rabbit provides a RabbitMQ client for the analysis worker.
//
// It manages the connection lifecycle (connect, reconnect, graceful shutdown),
// declares the exchange/queue topology for consumers, and exposes publish and
// consume operations with manual acknowledgment.
//
// Consumers run with a configurable prefetch count. The worker uses a prefetch
// of one so that the broker delivers the next message only after the current
// one is acknowledged; that serializes job processing per worker and keeps
// read-modify-write updates on the same record from overlapping.
//
// Consuming:
//
//	wg := &sync.WaitGroup{}
//	msgs := client.Consume(ctx, wg)
//	for msg := range msgs {
//	    if err := handle(msg.Body()); err != nil {
//	        msg.NackMsg(true)
//	        continue
//	    }
//	    msg.AckMsg()
//	}
//
// Publishing with headers:
//
//	err := client.Publish(ctx, body, map[string]interface{}{
//	    "x-delivery-attempts": 2,
//	})
//
// Headers are transport metadata only. Retry bookkeeping and trace context
// travel in headers; the JSON payload is never mutated by the broker layer.
//
// The package integrates with fx via FXModule, which starts the reconnection
// monitor on startup and closes the connection on shutdown.
package rabbit
