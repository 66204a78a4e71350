package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"accelscout/internal/secrets"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Store credentials in the OS keychain",
	Long: "Store API keys and passwords in the OS keychain under the accelscout\n" +
		"service. Headless deployments can use .env variables instead.",
}

var setSMTPCmd = &cobra.Command{
	Use:   "set-smtp [password]",
	Short: "Store the SMTP password for the configured alert account",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSetSMTP,
}

var setGeminiCmd = &cobra.Command{
	Use:   "set-gemini [api-key]",
	Short: "Store the Gemini API key",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSetGemini,
}

var setCSECmd = &cobra.Command{
	Use:   "set-cse [api-key] [engine-id]",
	Short: "Store the Google Programmable Search key and engine ID",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runSetCSE,
}

func init() {
	secretsCmd.AddCommand(setSMTPCmd, setGeminiCmd, setCSECmd)
	rootCmd.AddCommand(secretsCmd)
}

func argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return readSecret(prompt)
}

func runSetSMTP(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(dataDir())
	if err != nil {
		return err
	}

	password, err := argOrPrompt(args, "SMTP password: ")
	if err != nil {
		return err
	}

	account := secrets.SMTPKeyringAccount(cfg)
	if err := secrets.Set(account, password); err != nil {
		return err
	}
	fmt.Printf("stored SMTP password for %s\n", account)
	return nil
}

func runSetGemini(_ *cobra.Command, args []string) error {
	key, err := argOrPrompt(args, "Gemini API key: ")
	if err != nil {
		return err
	}

	if err := secrets.Set(secrets.GeminiAccount, key); err != nil {
		return err
	}
	fmt.Println("stored Gemini API key")
	return nil
}

func runSetCSE(_ *cobra.Command, args []string) error {
	var key, id string
	var err error
	if len(args) == 2 {
		key, id = args[0], args[1]
	} else {
		if key, err = readSecret("Google API key: "); err != nil {
			return err
		}
		if id, err = readSecret("Search engine ID: "); err != nil {
			return err
		}
	}

	if err := secrets.Set(secrets.CSEKeyAccount, key); err != nil {
		return err
	}
	if err := secrets.Set(secrets.CSEIDAccount, id); err != nil {
		return err
	}
	fmt.Println("stored search credentials")
	return nil
}
