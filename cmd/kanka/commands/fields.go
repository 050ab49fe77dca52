package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// writeFlags are shared by every create and update command.
type writeFlags struct {
	name      string
	entry     string
	entryFile string
	private   string
	set       []string
	images    []string
}

func (f *writeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "name")
	cmd.Flags().StringVar(&f.entry, "entry", "", "entry HTML")
	cmd.Flags().StringVar(&f.entryFile, "entry-file", "", "read the entry HTML from a file")
	cmd.Flags().StringVar(&f.private, "private", "", "mark as private (true or false)")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "set any attribute as key=value; values are parsed as JSON when possible")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "upload a local image for an entry placeholder as placeholder=path")
}

// fields collects the attributes the user asked to send. Only flags that
// were given end up in the result.
func (f *writeFlags) fields(cmd *cobra.Command) (kanka.Fields, error) {
	fields := kanka.Fields{}

	for _, pair := range f.set {
		key, value, err := splitKeyValue(pair)
		if err != nil {
			return nil, err
		}

		fields[key] = parseFieldValue(value)
	}

	if cmd.Flags().Changed("name") {
		fields["name"] = f.name
	}

	entry, ok, err := f.readEntry(cmd)
	if err != nil {
		return nil, err
	}

	if ok {
		fields["entry"] = entry
	}

	if cmd.Flags().Changed("private") {
		private, err := strconv.ParseBool(f.private)
		if err != nil {
			return nil, fmt.Errorf("invalid --private value %q: %w", f.private, err)
		}

		fields["is_private"] = private
	}

	return fields, nil
}

func (f *writeFlags) readEntry(cmd *cobra.Command) (string, bool, error) {
	hasEntry := cmd.Flags().Changed("entry")
	hasFile := cmd.Flags().Changed("entry-file")

	switch {
	case hasEntry && hasFile:
		return "", false, constants.ErrEntryAndEntryFile
	case hasFile:
		// #nosec G304 -- the user names the file to read
		data, err := os.ReadFile(f.entryFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read entry file: %w", err)
		}

		return string(data), true, nil
	case hasEntry:
		return f.entry, true, nil
	default:
		return "", false, nil
	}
}

func (f *writeFlags) writeOptions() ([]kanka.WriteOption, error) {
	if len(f.images) == 0 {
		return nil, nil
	}

	images := kanka.Images{}

	for _, pair := range f.images {
		placeholder, path, err := splitKeyValue(pair)
		if err != nil {
			return nil, err
		}

		images[placeholder] = path
	}

	return []kanka.WriteOption{kanka.WithImages(images)}, nil
}

func splitKeyValue(pair string) (string, string, error) {
	key, value, ok := strings.Cut(pair, "=")

	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, pair)
	}

	return key, value, nil
}

// parseFieldValue keeps numbers, booleans, null, arrays and objects typed and
// treats everything else as a string.
func parseFieldValue(value string) any {
	var parsed any

	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return value
	}

	if number, ok := parsed.(float64); ok && number == float64(int(number)) {
		return int(number)
	}

	return parsed
}

func parseFilters(pairs []string) (map[string]any, error) {
	filters := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, err := splitKeyValue(pair)
		if err != nil {
			return nil, err
		}

		filters[key] = value
	}

	return filters, nil
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, value)
	}

	return id, nil
}
