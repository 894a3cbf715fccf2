package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The one message this tool ever sends.
const (
	Subject = "Test from xmit-mail SMTP"
	Body    = "Hi there! This is a test email sent via the xmit-mail SMTP server."
)

// Message is the outbound test message. It is constructed immediately before
// transmission and never mutated afterwards. From and To are carried
// verbatim into the rendered headers, with no normalization.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string

	id   string
	date time.Time
}

// NewMessage builds the fixed test message addressed from -> to.
func NewMessage(from, to string) *Message {
	return &Message{
		From:    from,
		To:      to,
		Subject: Subject,
		Body:    Body,
		id:      uuid.New().String(),
		date:    time.Now(),
	}
}

// MessageID returns the generated Message-ID header value.
func (m *Message) MessageID() string {
	domain := "localhost"
	if i := strings.LastIndex(m.From, "@"); i >= 0 && i < len(m.From)-1 {
		domain = m.From[i+1:]
	}
	return fmt.Sprintf("<%s@%s>", m.id, domain)
}

// Bytes renders the message for the DATA phase: RFC 5322 headers, a blank
// line, then the plaintext body.
func (m *Message) Bytes() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Message-ID: %s\r\n", m.MessageID())
	fmt.Fprintf(&b, "Date: %s\r\n", m.date.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
