package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/logging"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/fivetwenty-io/kanka-client/pkg/kankaclient"
)

// Config is the persisted CLI configuration.
type Config struct {
	Token             string `json:"token,omitempty"               yaml:"token,omitempty"`
	Campaign          int    `json:"campaign,omitempty"            yaml:"campaign,omitempty"`
	API               string `json:"api,omitempty"                 yaml:"api,omitempty"`
	Output            string `json:"output,omitempty"              yaml:"output,omitempty"`
	RequestsPerMinute int    `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`
}

// configKeys lists the keys accepted by config set and unset.
var configKeys = []string{"token", "campaign", "api", "output", "requests_per_minute"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in ~/.kanka/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags and KANKA_* environment variables are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := effectiveConfig()
			config.Token = maskToken(config.Token)

			return render(cmd, config, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")

				return appendRows(table,
					[]string{"Config File", formatConfigValue(configFilePath())},
					[]string{"Token", formatConfigValue(config.Token)},
					[]string{"Campaign", formatConfigValue(formatOptionalInt(config.Campaign))},
					[]string{"API", formatConfigValue(config.API)},
					[]string{"Output", formatConfigValue(config.Output)},
					[]string{"Requests Per Minute", formatConfigValue(formatOptionalInt(config.RequestsPerMinute))},
				)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			if err := writeConfigFile(path, config); err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd, "Set", args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			if err := unsetConfigValue(config, args[0]); err != nil {
				return err
			}

			if err := writeConfigFile(path, config); err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd, "Unset", args[0], "")
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch normalizeConfigKey(key) {
	case "token":
		config.Token = value
	case "campaign":
		campaign, err := strconv.Atoi(value)
		if err != nil || campaign <= 0 {
			return fmt.Errorf("%w: %q", constants.ErrInvalidCampaignID, value)
		}

		config.Campaign = campaign
	case "api":
		config.API = kankaclient.NormalizeBaseURL(value)
	case "output":
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("unsupported output format %q", value)
		}
	case "requests_per_minute":
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			return fmt.Errorf("invalid requests_per_minute %q", value)
		}

		config.RequestsPerMinute = limit
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch normalizeConfigKey(key) {
	case "token":
		config.Token = ""
	case "campaign":
		config.Campaign = 0
	case "api":
		config.API = ""
	case "output":
		config.Output = ""
	case "requests_per_minute":
		config.RequestsPerMinute = 0
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func normalizeConfigKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// effectiveConfig is the configuration after flags and environment overrides.
func effectiveConfig() *Config {
	return &Config{
		Token:             viper.GetString("token"),
		Campaign:          viper.GetInt("campaign"),
		API:               viper.GetString("api"),
		Output:            viper.GetString("output"),
		RequestsPerMinute: viper.GetInt("requests_per_minute"),
	}
}

func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}

	if path := viper.GetString("config"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kanka", "config.yml")
	}

	return filepath.Join(home, ".kanka", "config.yml")
}

// readConfigFile loads the persisted settings only, so flags and environment
// variables are never written back. A missing file is an empty config.
func readConfigFile(path string) (*Config, error) {
	// #nosec G304 -- the path comes from --config or the user's home directory
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateClient builds a campaign client from the effective configuration.
func CreateClient(ctx context.Context) (kanka.Client, error) {
	config := effectiveConfig()

	if config.Token == "" {
		return nil, constants.ErrNoTokenConfigured
	}

	if config.Campaign <= 0 {
		return nil, constants.ErrNoCampaignConfigured
	}

	return kankaclient.New(ctx, &kanka.Config{
		Token:             config.Token,
		CampaignID:        config.Campaign,
		BaseURL:           config.API,
		RequestsPerMinute: config.RequestsPerMinute,
		Debug:             viper.GetBool("verbose"),
		Logger:            logging.KankaLogger(newLogger()),
		UserAgent:         "kanka-cli",
	})
}

func outputConfigUpdateResult(cmd *cobra.Command, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    normalizeConfigKey(key),
	}

	if value != "" {
		result["value"] = value
		if result["key"] == "token" {
			result["value"] = maskToken(value)
		}
	}

	return render(cmd, result, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		rows := [][]string{{"Action", action}, {"Key", result["key"]}}
		if value != "" {
			rows = append(rows, []string{"Value", result["value"]})
		}

		return appendRows(table, rows...)
	})
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}

	return constants.MaskedSecret
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func formatOptionalInt(value int) string {
	if value == 0 {
		return ""
	}

	return strconv.Itoa(value)
}
