package adapter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Notification is a single NOTIFY delivered on a listened channel
type Notification struct {
	PID     uint32
	Channel string
	Payload string
}

// PGListenerConn is a dedicated Postgres connection used for LISTEN
//
//go:generate mockgen -source=postgres.go -destination=../mocks/postgres.go -package=mocks -mock_names=PGListenerConn=MockPGListenerConn,PGConnector=MockPGConnector
type PGListenerConn interface {
	// Listen subscribes the connection to a notification channel
	Listen(ctx context.Context, channel string) error
	// WaitForNotification blocks until a notification arrives, the context
	// is done or the connection fails
	WaitForNotification(ctx context.Context) (*Notification, error)
	// Close closes the connection
	Close(ctx context.Context) error
}

// PGConnector opens listener connections
type PGConnector interface {
	Connect(ctx context.Context, connString string) (PGListenerConn, error)
}

// RealPGConnector implements PGConnector with pgx
type RealPGConnector struct{}

// NewPGConnector creates a new pgx backed connector
func NewPGConnector() PGConnector {
	return &RealPGConnector{}
}

func (c *RealPGConnector) Connect(ctx context.Context, connString string) (PGListenerConn, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &pgxListenerConn{conn: conn}, nil
}

// pgxListenerConn adapts *pgx.Conn to PGListenerConn
type pgxListenerConn struct {
	conn *pgx.Conn
}

func (c *pgxListenerConn) Listen(ctx context.Context, channel string) error {
	// LISTEN does not accept bind parameters
	_, err := c.conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	return err
}

func (c *pgxListenerConn) WaitForNotification(ctx context.Context) (*Notification, error) {
	n, err := c.conn.WaitForNotification(ctx)
	if err != nil {
		return nil, err
	}
	return toNotification(n), nil
}

func (c *pgxListenerConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

func toNotification(n *pgconn.Notification) *Notification {
	return &Notification{
		PID:     n.PID,
		Channel: n.Channel,
		Payload: n.Payload,
	}
}
