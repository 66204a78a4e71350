package alert

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"accelscout/internal/config"
)

const sendAttempts = 3

// Mailer delivers one digest.
type Mailer interface {
	Send(ctx context.Context, d Digest) error
}

// SMTPMailer submits digests over SMTP with STARTTLS and mirrors them to
// the Sent mailbox when the IMAP copy is enabled.
type SMTPMailer struct {
	cfg        config.Config
	password   string
	retryDelay time.Duration
}

func NewMailer(cfg config.Config, password string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, password: password, retryDelay: time.Second}
}

func (m *SMTPMailer) Send(ctx context.Context, d Digest) error {
	from := m.cfg.Alert.SMTP.Username
	to := m.cfg.Alert.Recipient
	msg := BuildMessage(from, to, d)
	addr := net.JoinHostPort(m.cfg.Alert.SMTP.Host, strconv.Itoa(m.cfg.Alert.SMTP.Port))

	var lastErr error
	for attempt := 0; attempt < sendAttempts; attempt++ {
		if attempt > 0 {
			// 1s, then 2s between retries
			delay := m.retryDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = m.sendOnce(addr, from, to, msg)
		if lastErr == nil {
			if m.cfg.Alert.IMAP.Enabled {
				if err := AppendToSent(ctx, m.cfg, m.password, msg); err != nil {
					log.Printf("[alert] copy to %q mailbox: %v", m.cfg.Alert.IMAP.Mailbox, err)
				}
			}
			return nil
		}
		log.Printf("[alert] send attempt %d/%d: %v", attempt+1, sendAttempts, lastErr)
	}
	return fmt.Errorf("smtp send after %d attempts: %w", sendAttempts, lastErr)
}

func (m *SMTPMailer) sendOnce(addr, from, to string, msg []byte) error {
	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: m.cfg.Alert.SMTP.Host,
		}
		if err := c.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if m.password != "" {
		auth := smtp.PlainAuth("", m.cfg.Alert.SMTP.Username, m.password, m.cfg.Alert.SMTP.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return c.Quit()
}

// BuildMessage assembles the full multipart/alternative RFC822 message.
// The same bytes go to SMTP and, when enabled, to the IMAP Sent copy.
func BuildMessage(from, to string, d Digest) []byte {
	boundary := "b-" + uuid.NewString()

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", d.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@accelscout>\r\n", uuid.NewString())
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(toCRLF(d.Text))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(toCRLF(d.HTML))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes()
}

func toCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
