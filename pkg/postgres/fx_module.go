package postgres

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/fx"
)

// FXModule provides the Postgres client via dependency injection and wires
// connection monitoring into the application lifecycle.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgres,
		func(p *Postgres) Client { return p },
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle starts the connection monitor and retry loops on
// startup and shuts the client down cleanly on stop.
func RegisterPostgresLifecycle(lc fx.Lifecycle, client *Postgres) {
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go client.MonitorConnection(monitorCtx)
			go client.RetryConnection(monitorCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelMonitor()
			log.Println("INFO: Shutting down database client")
			return client.GracefulShutdown()
		},
	})
}

// GracefulShutdown stops the monitoring goroutines and closes the underlying
// connection pool exactly once.
func (p *Postgres) GracefulShutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	dbConn := p.DB()
	if dbConn == nil {
		return nil
	}
	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during shutdown: %w", err)
	}
	return db.Close()
}
