package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Veraticus/simsieve/internal/cli"
	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/config"
	"github.com/Veraticus/simsieve/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services like Google Sheets.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authorize Google Sheets export",
		Long: `Run the Google OAuth2 flow and store a refresh token.

This command will:
1. Start a local callback server
2. Open the Google consent page in your browser
3. Save the token for 'simsieve analyze --sheets' and 'simsieve export --sheets'`,
		Args: cobra.NoArgs,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "Google OAuth2 client ID")
	cmd.Flags().String("client-secret", "", "Google OAuth2 client secret")
	cmd.Flags().String("callback-addr", sheets.DefaultCallbackAddr, "address for the local OAuth2 callback server")
	cmd.Flags().Bool("no-browser", false, "print the consent URL instead of opening a browser")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get OAuth2 config
	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	// Override with flags if provided
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	// Check for environment variables as fallback
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	callbackAddr, _ := cmd.Flags().GetString("callback-addr")
	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	tokenFile := config.TokenFile()

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	oauthConfig := sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		CallbackAddr: callbackAddr,
	}

	out := cmd.OutOrStdout()
	token, err := sheets.AuthenticateOAuth2Interactive(ctx, oauthConfig, func(authURL string) {
		fmt.Fprintln(out, cli.FormatInfo("Mở liên kết sau để cấp quyền Google Sheets:"))
		fmt.Fprintln(out, authURL)
		if !noBrowser {
			openBrowser(authURL)
		}
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Keep the client credentials next to the token so export can refresh it.
	viper.Set("sheets.client_id", clientID)
	viper.Set("sheets.client_secret", clientSecret)
	viper.Set("sheets.refresh_token", token.RefreshToken)

	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", common.ErrAttr(err))
		fmt.Fprintln(out, cli.FormatWarning("Could not save the refresh token to the config file; it is stored in "+tokenFile))
	} else {
		slog.Info("Updated config file with refresh token")
	}

	fmt.Fprintln(out, cli.FormatSuccess("Google Sheets is now configured. Use --sheets with analyze or export."))
	return nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ExpandPath("~/.config/simsieve/config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec,forbidigo
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec,forbidigo
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec,forbidigo
	}
	if err != nil {
		slog.Debug("Failed to open browser", common.ErrAttr(err))
	}
}
