package postgres

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres is a wrapper around gorm.DB that provides connection monitoring,
// automatic reconnection, and standardized database operations.
//
// Concurrency: the active `*gorm.DB` pointer is stored in an atomic pointer and can be
// swapped during reconnection without blocking readers.
type Postgres struct {
	cfg             Config
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewPostgres creates a new Postgres instance with the provided configuration.
// It establishes the initial database connection and sets up the internal state
// for connection monitoring and recovery.
//
// Returns *Postgres concrete type (accept interfaces, return structs).
func NewPostgres(cfg Config) (*Postgres, error) {
	conn, err := connectToPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres after all retries: %w", err)
	}

	pg := &Postgres{
		cfg:             cfg,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(conn)
	return pg, nil
}

// connectToPostgres establishes a connection to the PostgreSQL database using the
// provided configuration, then configures the connection pool.
func connectToPostgres(postgresConfig Config) (*gorm.DB, error) {
	pgConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		postgresConfig.Connection.Host,
		postgresConfig.Connection.Port,
		postgresConfig.Connection.User,
		postgresConfig.Connection.Password,
		postgresConfig.Connection.DbName,
		postgresConfig.Connection.SSLMode)

	database, err := gorm.Open(
		postgres.Open(pgConnStr),
		&gorm.Config{
			TranslateError: true,
		})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	// Zero-valued config fields fall back to package defaults.
	maxOpen := postgresConfig.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := postgresConfig.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := postgresConfig.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	log.Println("INFO: Successfully connected to PostgreSQL database")

	return database, nil
}

// RetryConnection continuously attempts to reconnect to the database when
// notified of a connection failure. It waits for signals on retryChanSignal
// before attempting reconnection, and respects context cancellation and
// shutdown signals.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			log.Println("INFO: Stopping RetryConnection loop due to shutdown signal")
			return
		case <-ctx.Done():
			return
		case <-p.retryChanSignal:
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.cfg)
					if err != nil {
						log.Printf("ERROR: PostgreSQL reconnection failed: %v", err)
						time.Sleep(time.Second)
						continue innerLoop
					}
					p.client.Store(newConn)
					log.Println("INFO: Successfully reconnected to PostgreSQL database")
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection periodically checks the health of the database connection
// and signals the RetryConnection goroutine when a failure is detected.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			log.Println("INFO: Stopping MonitorConnection loop due to shutdown signal")
			return
		case <-ticker.C:
			err := p.healthCheck()
			if err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck snapshots the current *gorm.DB and pings the database with a
// 5 second timeout to verify connectivity.
func (p *Postgres) healthCheck() error {
	dbConn := p.DB()
	if dbConn == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}

	return nil
}
