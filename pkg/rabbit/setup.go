package rabbit

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger defines the interface for logging operations in the rabbit package.
// This interface allows the package to use any logging implementation that
// conforms to these methods.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Rabbit is a client for the message broker. It manages the connection and
// channel, declares the exchange/queue topology for consumers, and provides
// publish and consume operations with automatic reconnection.
type Rabbit struct {
	cfg Config

	// Channel is the main AMQP channel used for publishing and consuming.
	Channel *amqp.Channel

	conn   *amqp.Connection
	logger Logger

	// mu protects concurrent access to connection and channel during reconnects.
	mu sync.RWMutex

	// shutdownSignal is closed when the client is being shut down.
	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
}

// NewClient creates and initializes a new broker client with the provided
// configuration. It establishes the connection, opens a channel, and declares
// exchanges and queues as configured.
//
// If the connection or channel setup fails, it logs a fatal error.
func NewClient(config Config, logger Logger) *Rabbit {
	con, err := newConnection(config, logger)
	if err != nil {
		logger.Fatal("error in connecting to rabbit after all retries", err, nil)
	}

	ch, err := connectToChannel(con, config, logger)
	if ch == nil || err != nil {
		logger.Fatal("error in declaring channel", err, nil)
	}

	return &Rabbit{
		cfg:            config,
		conn:           con,
		Channel:        ch,
		logger:         logger,
		shutdownSignal: make(chan struct{}),
	}
}

// connectToChannel creates and configures a channel. Consumers get the full
// exchange/queue/binding declaration plus QoS; publishers only get a confirmed
// channel.
func connectToChannel(rb *amqp.Connection, cfg Config, logger Logger) (*amqp.Channel, error) {
	ch, err := rb.Channel()
	if err != nil {
		logger.Error("failed to create channel", err, nil)
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		logger.Error("failed to enable publisher confirms", err, nil)
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if !cfg.Channel.IsConsumer {
		return ch, nil
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		logger.Error("failed to declare exchange", err, map[string]interface{}{
			"exchange": cfg.Channel.ExchangeName,
		})
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	queueArgs := amqp.Table{}
	if cfg.DeadLetter.ExchangeName != "" && cfg.DeadLetter.Ttl > 0 {
		err = ch.ExchangeDeclare(
			cfg.DeadLetter.ExchangeName,
			"direct",
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("failed to declare dead letter exchange", err, map[string]interface{}{
				"exchange": cfg.DeadLetter.ExchangeName,
			})
			return nil, fmt.Errorf("failed to declare dead letter exchange: %w", err)
		}

		_, err = ch.QueueDeclare(
			cfg.DeadLetter.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("failed to declare dead letter queue", err, map[string]interface{}{
				"queue": cfg.DeadLetter.QueueName,
			})
			return nil, fmt.Errorf("failed to declare dead letter queue: %w", err)
		}

		err = ch.QueueBind(
			cfg.DeadLetter.QueueName,
			cfg.DeadLetter.RoutingKey,
			cfg.DeadLetter.ExchangeName,
			false,
			nil,
		)
		if err != nil {
			logger.Error("failed to bind dead letter queue", err, map[string]interface{}{
				"queue":    cfg.DeadLetter.QueueName,
				"exchange": cfg.DeadLetter.ExchangeName,
			})
			return nil, fmt.Errorf("failed to bind dead letter queue: %w", err)
		}

		queueArgs = amqp.Table{
			"x-dead-letter-exchange":    cfg.DeadLetter.ExchangeName,
			"x-dead-letter-routing-key": cfg.DeadLetter.RoutingKey,
			"x-message-ttl":             cfg.DeadLetter.Ttl * 1000, // Convert to milliseconds
		}
	}

	_, err = ch.QueueDeclare(
		cfg.Channel.QueueName,
		true,      // Durable
		false,     // AutoDelete
		false,     // Exclusive
		false,     // NoWait
		queueArgs, // Arguments including dead letter config
	)
	if err != nil {
		logger.Error("failed to declare queue", err, map[string]interface{}{
			"queue": cfg.Channel.QueueName,
		})
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = ch.QueueBind(
		cfg.Channel.QueueName,
		cfg.Channel.RoutingKey,
		cfg.Channel.ExchangeName,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to bind queue", err, map[string]interface{}{
			"queue":    cfg.Channel.QueueName,
			"exchange": cfg.Channel.ExchangeName,
		})
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	if cfg.Channel.PrefetchCount > 0 {
		err = ch.Qos(cfg.Channel.PrefetchCount, 0, false)
		if err != nil {
			logger.Error("failed to set QoS", err, map[string]interface{}{
				"prefetch_count": cfg.Channel.PrefetchCount,
			})
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	return ch, nil
}

// RetryConnection continuously monitors the broker connection and
// re-establishes it if it fails. Typically run in a goroutine.
func (rb *Rabbit) RetryConnection(logger Logger, cfg Config) {
outerLoop:
	for {
		errChan := make(chan *amqp.Error, 1)
		rb.conn.NotifyClose(errChan)

		select {
		case <-rb.shutdownSignal:
			logger.Info("stopping RetryConnection loop due to shutdown signal", nil, nil)
			return

		case err := <-errChan:
			logger.Warn("rabbit connection closed, retrying...", err, nil)
		reconnectLoop:
			for {
				select {
				case <-rb.shutdownSignal:
					logger.Info("stopping RetryConnection loop due to shutdown signal inside reconnect", nil, nil)
					return
				default:
					newConn, err := newConnection(cfg, logger)
					if err != nil {
						logger.Error("reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue reconnectLoop
					}

					rb.mu.Lock()
					rb.conn = newConn
					if rb.Channel != nil {
						_ = rb.Channel.Close()
					}
					rb.Channel, err = connectToChannel(newConn, cfg, logger)
					rb.mu.Unlock()

					if err != nil {
						logger.Error("failed to reopen channel, retrying...", err, nil)
						continue reconnectLoop
					}

					logger.Info("reconnected to rabbit", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// newConnection establishes a connection to the broker. It supports SSL with
// client certificates, SSL with server authentication only, and plain AMQP.
// All connections use a 2-second heartbeat to detect disconnections quickly.
func newConnection(cfg Config, logger Logger) (*amqp.Connection, error) {

	logger.Info("connecting to rabbit", nil, nil)

	if cfg.Connection.IsSSLEnabled && cfg.Connection.UseCert {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		caCert, err := os.ReadFile(cfg.Connection.CACertPath)
		if err != nil {
			logger.Error("failed to read CA certificate", err, nil)
			return nil, err
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)

		cert, err := tls.LoadX509KeyPair(cfg.Connection.ClientCertPath, cfg.Connection.ClientKeyPath)
		if err != nil {
			logger.Error("failed to load client cert/key", err, nil)
			return nil, err
		}

		tlsConfig := &tls.Config{
			RootCAs:      caCertPool,
			Certificates: []tls.Certificate{cert},
			ServerName:   cfg.Connection.ServerName,
		}
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat:       2 * time.Second,
			TLSClientConfig: tlsConfig,
		})
		if err == nil {
			logger.Info("connected to rabbit", nil, map[string]interface{}{
				"rabbit_host": cfg.Connection.Host,
			})
			return conn, nil
		}
		logger.Error("error in connecting to rabbit", err, map[string]interface{}{
			"rabbit_host": cfg.Connection.Host,
		})
	} else if !cfg.Connection.IsSSLEnabled {
		hostURL := fmt.Sprintf("amqp://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			logger.Info("connected to rabbit", nil, map[string]interface{}{
				"rabbit_host": cfg.Connection.Host,
			})
			return conn, nil
		}
		logger.Error("error in connecting to rabbit", err, map[string]interface{}{
			"rabbit_host": cfg.Connection.Host,
		})
	} else {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			logger.Info("connected to rabbit", nil, map[string]interface{}{
				"rabbit_host": cfg.Connection.Host,
			})
			return conn, nil
		}
		logger.Error("error in connecting to rabbit", err, map[string]interface{}{
			"rabbit_host": cfg.Connection.Host,
		})
	}
	return nil, fmt.Errorf("failed to connect to rabbit")
}
