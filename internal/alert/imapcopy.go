package alert

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"accelscout/internal/config"
)

// AppendToSent copies the outgoing message into the configured mailbox so
// the digest shows up in the account's Sent view. Plain SMTP submission
// does not do that on most providers.
func AppendToSent(ctx context.Context, cfg config.Config, password string, msg []byte) error {
	host := cfg.Alert.IMAP.Host
	addr := net.JoinHostPort(host, strconv.Itoa(cfg.Alert.IMAP.Port))

	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: host,
		},
	})
	if err != nil {
		return fmt.Errorf("imap dial tls: %w", err)
	}
	defer c.Close()

	// Best-effort close on context cancel.
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(cfg.Alert.SMTP.Username, password).Wait(); err != nil {
		return fmt.Errorf("imap login: %w", err)
	}

	appendCmd := c.Append(cfg.Alert.IMAP.Mailbox, int64(len(msg)), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagSeen},
		Time:  time.Now(),
	})
	if _, err := appendCmd.Write(msg); err != nil {
		_ = appendCmd.Close()
		return fmt.Errorf("imap append write: %w", err)
	}
	if err := appendCmd.Close(); err != nil {
		return fmt.Errorf("imap append close: %w", err)
	}
	if _, err := appendCmd.Wait(); err != nil {
		return fmt.Errorf("imap append: %w", err)
	}

	if err := c.Logout().Wait(); err != nil {
		log.Printf("[alert] imap logout: %v", err)
	}
	return nil
}
