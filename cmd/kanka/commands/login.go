package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/logging"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/fivetwenty-io/kanka-client/pkg/kankaclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skip bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a personal access token",
		Long: `Store a Kanka personal access token and the campaign to work in.

The global --token and --campaign flags are used when given; otherwise the
token is read without echo and the campaign id is prompted for. Unless
--skip-verify is set, the credentials are checked against the API before
they are saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			input := bufio.NewReader(cmd.InOrStdin())

			token := viper.GetString("token")
			if token == "" {
				token, err = promptToken(cmd, input)
				if err != nil {
					return err
				}
			}

			if token == "" {
				return constants.ErrNoTokenConfigured
			}

			campaign := viper.GetInt("campaign")
			if campaign == 0 {
				campaign, err = promptCampaign(cmd, input)
				if err != nil {
					return err
				}
			}

			if campaign <= 0 {
				return constants.ErrNoCampaignConfigured
			}

			api := viper.GetString("api")

			if !skip {
				if err := verifyCredentials(cmd.Context(), token, campaign, api); err != nil {
					return err
				}
			}

			config.Token = token
			config.Campaign = campaign

			if api != "" {
				config.API = kankaclient.NormalizeBaseURL(api)
			}

			if err := writeConfigFile(path, config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			printMessage(cmd, "Logged in to campaign %d", campaign)

			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip-verify", false, "save without checking the credentials")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		Long:  "Remove the stored personal access token. The campaign and other settings are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			config.Token = ""

			if err := writeConfigFile(path, config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			printMessage(cmd, "Successfully logged out")

			return nil
		},
	}
}

func promptToken(cmd *cobra.Command, input *bufio.Reader) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Personal access token: ")

	// #nosec G115 -- stdin file descriptors fit in an int
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	line, _ := input.ReadString('\n')

	return strings.TrimSpace(line), nil
}

func promptCampaign(cmd *cobra.Command, input *bufio.Reader) (int, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Campaign id: ")

	line, _ := input.ReadString('\n')

	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	campaign, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidCampaignID, line)
	}

	return campaign, nil
}

// verifyCredentials lists a single entity, which needs both a valid token and
// access to the campaign.
func verifyCredentials(ctx context.Context, token string, campaign int, api string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	client, err := kankaclient.New(ctx, &kanka.Config{
		Token:                 token,
		CampaignID:            campaign,
		BaseURL:               api,
		DisableRateLimitRetry: true,
		Debug:                 viper.GetBool("verbose"),
		Logger:                logging.KankaLogger(newLogger()),
	})
	if err != nil {
		return err
	}

	_, err = client.Entities(ctx, kanka.NewListOptions().WithLimit(1))
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	return nil
}
