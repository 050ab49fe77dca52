package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/logging"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// render writes data as JSON or YAML, or hands a table to fillTable.
func render(cmd *cobra.Command, data any, fillTable func(table *tablewriter.Table) error) error {
	out := cmd.OutOrStdout()

	switch viper.GetString("output") {
	case constants.FormatJSON:
		return renderJSON(out, data)
	case constants.FormatYAML:
		return renderYAML(out, data)
	default:
		table := tablewriter.NewWriter(out)

		if err := fillTable(table); err != nil {
			return err
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func renderJSON(out io.Writer, data any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func renderYAML(out io.Writer, data any) error {
	encoder := yaml.NewEncoder(out)
	defer func() { _ = encoder.Close() }()

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// renderRecord renders one decoded record. JSON output includes the keys the
// model does not declare.
func renderRecord(cmd *cobra.Command, record any, fillTable func(table *tablewriter.Table) error) error {
	if viper.GetString("output") == constants.FormatJSON {
		flat, err := kanka.Flatten(record)
		if err != nil {
			return err
		}

		return renderJSON(cmd.OutOrStdout(), flat)
	}

	return render(cmd, record, fillTable)
}

func appendRows(table *tablewriter.Table, rows ...[]string) error {
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	return nil
}

func printPageFooter(cmd *cobra.Command, meta kanka.Meta) {
	if viper.GetString("output") != constants.FormatTable && viper.GetString("output") != "" {
		return
	}

	if meta.LastPage > 1 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d total)\n", meta.CurrentPage, meta.LastPage, meta.Total)
	}
}

func printMessage(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// preview shortens an HTML entry to one table cell.
func preview(entry string) string {
	text := strings.Join(strings.Fields(stripTags(entry)), " ")

	runes := []rune(text)
	if len(runes) <= constants.EntryPreviewLength {
		return text
	}

	return string(runes[:constants.EntryPreviewLength-3]) + "..."
}

func stripTags(html string) string {
	var builder strings.Builder

	inTag := false

	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false

			builder.WriteRune(' ')
		case !inTag:
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return constants.NotAvailable
	}

	return value.Format(time.RFC3339)
}

func formatIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	return strings.Join(parts, ",")
}

// newLogger returns the command logger. Logs go to stderr so they never mix
// with rendered output.
func newLogger() *zap.Logger {
	level := viper.GetString("log_level")
	if viper.GetBool("verbose") {
		level = "debug"
	}

	logger, err := logging.NewLogger(level)
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
