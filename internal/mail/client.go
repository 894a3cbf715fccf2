// Package mail holds the outbound test message and the SMTP submission
// client that delivers it.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"net/textproto"
)

// Sender submits one message over an authenticated session.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// AuthError reports a credential rejected by the remote endpoint.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ProtocolError reports any other failure raised during the SMTP exchange,
// tagged with the phase that failed.
type ProtocolError struct {
	Phase string
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Client submits a single message to a mail-submission endpoint: dial,
// EHLO, STARTTLS when offered, AUTH PLAIN, MAIL/RCPT/DATA, QUIT. One
// attempt, no retries. The underlying connection is released on every exit
// path.
type Client struct {
	Addr     string // host:port of the submission endpoint
	Username string
	Password string

	// HeloName is the name announced in EHLO. Defaults to localhost.
	HeloName string

	// TLSConfig overrides the config used for the STARTTLS upgrade.
	TLSConfig *tls.Config

	// DialContext overrides the dial function. Defaults to a plain
	// net.Dialer.
	DialContext func(ctx context.Context, network, addr string) (net.Conn, error)

	Logger *slog.Logger
}

func (c *Client) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Send runs the full submission sequence for msg. Dial and name-resolution
// failures are returned as plain errors; rejected credentials come back as
// *AuthError and every other exchange failure as *ProtocolError.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", c.Addr, err)
	}

	dial := c.DialContext
	if dial == nil {
		var d net.Dialer
		dial = d.DialContext
	}
	conn, err := dial(ctx, "tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.Addr, err)
	}
	c.log().Debug("connected", "addr", c.Addr)

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return &ProtocolError{Phase: "greeting", Err: err}
	}
	defer func() { _ = client.Close() }()

	heloName := c.HeloName
	if heloName == "" {
		heloName = "localhost"
	}
	if err := client.Hello(heloName); err != nil {
		return &ProtocolError{Phase: "EHLO", Err: err}
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := c.TLSConfig
		if tlsConfig == nil {
			tlsConfig = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return &ProtocolError{Phase: "STARTTLS", Err: err}
		}
		c.log().Debug("STARTTLS negotiated", "host", host)
	}

	auth := smtp.PlainAuth("", c.Username, c.Password, host)
	if err := client.Auth(auth); err != nil {
		if isAuthRejection(err) {
			return &AuthError{Err: err}
		}
		return &ProtocolError{Phase: "AUTH", Err: err}
	}
	c.log().Debug("authenticated", "username", c.Username)

	if err := client.Mail(msg.From); err != nil {
		return &ProtocolError{Phase: "MAIL FROM", Err: err}
	}
	if err := client.Rcpt(msg.To); err != nil {
		return &ProtocolError{Phase: "RCPT TO", Err: err}
	}

	writer, err := client.Data()
	if err != nil {
		return &ProtocolError{Phase: "DATA", Err: err}
	}
	if _, err := writer.Write(msg.Bytes()); err != nil {
		return &ProtocolError{Phase: "DATA", Err: err}
	}
	if err := writer.Close(); err != nil {
		return &ProtocolError{Phase: "DATA", Err: err}
	}
	c.log().Debug("message accepted", "message_id", msg.MessageID())

	if err := client.Quit(); err != nil {
		c.log().Debug("QUIT failed", "error", err)
	}
	return nil
}

// isAuthRejection reports whether err is a server reply rejecting the
// credential rather than some other exchange failure.
func isAuthRejection(err error) bool {
	var tpErr *textproto.Error
	if !errors.As(err, &tpErr) {
		return false
	}
	switch tpErr.Code {
	case 454, 530, 534, 535:
		return true
	}
	return false
}
