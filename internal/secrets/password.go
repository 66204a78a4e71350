package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"accelscout/internal/config"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "accelscout"

	GeminiAccount = "accelscout:gemini"
	CSEKeyAccount = "accelscout:cse"
	CSEIDAccount  = "accelscout:cse-id"
)

// lookup checks the keychain first, then the named env var. The env path is
// what headless deployments use, fed by a .env file loaded at startup.
func lookup(account, envVar string) (string, error) {
	if strings.TrimSpace(account) != "" {
		pw, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}

	return "", fmt.Errorf("secret %q not found (set it in keychain or via %s)", account, envVar)
}

func GetSMTPPassword(keyringAccount string) (string, error) {
	return lookup(keyringAccount, "SMTP_PASSWORD")
}

func GetGeminiKey() (string, error) {
	return lookup(GeminiAccount, "GEMINI_API_KEY")
}

func GetCSEKey() (string, error) {
	return lookup(CSEKeyAccount, "GOOGLE_API_KEY")
}

func GetCSEID() (string, error) {
	return lookup(CSEIDAccount, "GOOGLE_CSE_ID")
}

func Set(account string, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func SMTPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"accelscout:smtp:%s@%s",
		cfg.Alert.SMTP.Username,
		cfg.Alert.SMTP.Host,
	)
}
