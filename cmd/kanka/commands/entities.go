package commands

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// entityRecord is satisfied by a pointer to any entity type.
type entityRecord[T any] interface {
	*T
	Base() *kanka.Entity
}

type managerFunc[T any] func(client kanka.Client) kanka.EntityManager[T]

// NewEntityCommands creates one command group per entity type.
func NewEntityCommands() []*cobra.Command {
	return []*cobra.Command{
		newEntityCommand("ability", func(c kanka.Client) kanka.EntityManager[kanka.Ability] { return c.Abilities() }),
		newEntityCommand("attribute_template", func(c kanka.Client) kanka.EntityManager[kanka.AttributeTemplate] {
			return c.AttributeTemplates()
		}),
		newEntityCommand("bookmark", func(c kanka.Client) kanka.EntityManager[kanka.Bookmark] { return c.Bookmarks() }),
		newEntityCommand("calendar", func(c kanka.Client) kanka.EntityManager[kanka.Calendar] { return c.Calendars() }),
		newEntityCommand("character", func(c kanka.Client) kanka.EntityManager[kanka.Character] { return c.Characters() }),
		newEntityCommand("conversation", func(c kanka.Client) kanka.EntityManager[kanka.Conversation] {
			return c.Conversations()
		}),
		newEntityCommand("creature", func(c kanka.Client) kanka.EntityManager[kanka.Creature] { return c.Creatures() }),
		newEntityCommand("dice_roll", func(c kanka.Client) kanka.EntityManager[kanka.DiceRoll] { return c.DiceRolls() }),
		newEntityCommand("event", func(c kanka.Client) kanka.EntityManager[kanka.Event] { return c.Events() }),
		newEntityCommand("family", func(c kanka.Client) kanka.EntityManager[kanka.Family] { return c.Families() }),
		newEntityCommand("item", func(c kanka.Client) kanka.EntityManager[kanka.Item] { return c.Items() }),
		newEntityCommand("journal", func(c kanka.Client) kanka.EntityManager[kanka.Journal] { return c.Journals() }),
		newEntityCommand("location", func(c kanka.Client) kanka.EntityManager[kanka.Location] { return c.Locations() }),
		newEntityCommand("map", func(c kanka.Client) kanka.EntityManager[kanka.Map] { return c.Maps() }),
		newEntityCommand("note", func(c kanka.Client) kanka.EntityManager[kanka.Note] { return c.Notes() }),
		newEntityCommand("organisation", func(c kanka.Client) kanka.EntityManager[kanka.Organisation] {
			return c.Organisations()
		}),
		newEntityCommand("quest", func(c kanka.Client) kanka.EntityManager[kanka.Quest] { return c.Quests() }),
		newEntityCommand("race", func(c kanka.Client) kanka.EntityManager[kanka.Race] { return c.Races() }),
		newEntityCommand("tag", func(c kanka.Client) kanka.EntityManager[kanka.Tag] { return c.Tags() }),
		newEntityCommand("timeline", func(c kanka.Client) kanka.EntityManager[kanka.Timeline] { return c.Timelines() }),
	}
}

func newEntityCommand[T any, PT entityRecord[T]](
	typeName string,
	manager func(client kanka.Client) kanka.EntityManager[T],
) *cobra.Command {
	entityType, err := kanka.LookupEntityType(typeName)
	if err != nil {
		panic(err)
	}

	label := strings.ReplaceAll(entityType.Name, "_", " ")

	cmd := &cobra.Command{
		Use:     commandName(entityType.Endpoint),
		Aliases: []string{commandName(entityType.Name)},
		Short:   "Manage " + strings.ReplaceAll(entityType.Endpoint, "_", " "),
		Long:    fmt.Sprintf("List, show, create, update and delete %s records of the current campaign", label),
	}

	managerOf := managerFunc[T](manager)

	cmd.AddCommand(newEntityListCommand[T, PT](label, managerOf))
	cmd.AddCommand(newEntityGetCommand[T, PT](label, managerOf))
	cmd.AddCommand(newEntityCreateCommand[T, PT](label, managerOf))
	cmd.AddCommand(newEntityUpdateCommand[T, PT](label, managerOf))
	cmd.AddCommand(newEntityDeleteCommand(label, managerOf))

	return cmd
}

func commandName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func newEntityListCommand[T any, PT entityRecord[T]](label string, manager managerFunc[T]) *cobra.Command {
	var (
		page       int
		limit      int
		all        bool
		name       string
		typeFilter string
		tags       []int
		private    string
		related    bool
		filters    []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + label + " records",
		Long:  "List " + label + " records with optional filters. --filter passes any other API filter through as key=value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			extra, err := parseFilters(filters)
			if err != nil {
				return err
			}

			opts := kanka.NewListOptions().WithPage(page).WithLimit(limit).WithName(name)
			opts.Type = typeFilter
			opts.Tags = tags

			if related {
				opts = opts.WithRelated()
			}

			if private != "" {
				isPrivate, err := strconv.ParseBool(private)
				if err != nil {
					return fmt.Errorf("invalid --private value %q: %w", private, err)
				}

				opts = opts.WithPrivate(isPrivate)
			}

			for key, value := range extra {
				opts = opts.WithFilter(key, value)
			}

			if all {
				records, err := manager(client).ListAll(cmd.Context(), opts)
				if err != nil {
					return err
				}

				return renderEntityList[T, PT](cmd, records, records)
			}

			resp, err := manager(client).List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if err := renderEntityList[T, PT](cmd, resp, resp.Data); err != nil {
				return err
			}

			printPageFooter(cmd, resp.Meta)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "records per page (max 100)")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().StringVar(&typeFilter, "type", "", "filter by the type field")
	cmd.Flags().IntSliceVar(&tags, "tags", nil, "filter by tag ids")
	cmd.Flags().StringVar(&private, "private", "", "filter on the privacy flag (true or false)")
	cmd.Flags().BoolVar(&related, "related", false, "include posts and attributes")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "additional API filter as key=value")

	return cmd
}

func renderEntityList[T any, PT entityRecord[T]](cmd *cobra.Command, data any, records []T) error {
	return render(cmd, data, func(table *tablewriter.Table) error {
		table.Header("ID", "Entity ID", "Name", "Private", "Tags", "Updated")

		for i := range records {
			base := PT(&records[i]).Base()

			err := appendRows(table, []string{
				strconv.Itoa(base.ID),
				strconv.Itoa(base.EntityID),
				base.Name,
				strconv.FormatBool(base.IsPrivate),
				formatIDs(base.Tags),
				formatTime(base.UpdatedAt),
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func renderEntity[T any, PT entityRecord[T]](cmd *cobra.Command, record *T) error {
	base := PT(record).Base()

	return renderRecord(cmd, record, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		rows := [][]string{
			{"ID", strconv.Itoa(base.ID)},
			{"Entity ID", strconv.Itoa(base.EntityID)},
			{"Name", base.Name},
			{"Private", strconv.FormatBool(base.IsPrivate)},
			{"Tags", formatIDs(base.Tags)},
			{"Image", formatConfigValue(base.ImageFull)},
			{"Created", formatTime(base.CreatedAt)},
			{"Updated", formatTime(base.UpdatedAt)},
			{"Entry", preview(base.Entry)},
		}

		if len(base.Posts) > 0 {
			rows = append(rows, []string{"Posts", strconv.Itoa(len(base.Posts))})
		}

		return appendRows(table, rows...)
	})
}

func newEntityGetCommand[T any, PT entityRecord[T]](label string, manager managerFunc[T]) *cobra.Command {
	var related bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one " + label,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			var record *T
			if related {
				record, err = manager(client).GetRelated(cmd.Context(), id)
			} else {
				record, err = manager(client).Get(cmd.Context(), id)
			}

			if err != nil {
				return err
			}

			return renderEntity[T, PT](cmd, record)
		},
	}

	cmd.Flags().BoolVar(&related, "related", false, "include posts and attributes")

	return cmd
}

func newEntityCreateCommand[T any, PT entityRecord[T]](label string, manager managerFunc[T]) *cobra.Command {
	flags := &writeFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + label,
		Long: "Create a " + label + ". --image placeholder=path uploads a local file and points every " +
			"src=\"placeholder\" in the entry at it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := flags.fields(cmd)
			if err != nil {
				return err
			}

			if name, _ := fields["name"].(string); strings.TrimSpace(name) == "" {
				return constants.ErrNameRequired
			}

			opts, err := flags.writeOptions()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			record, err := manager(client).Create(cmd.Context(), fields, opts...)
			if err != nil {
				return err
			}

			return renderEntity[T, PT](cmd, record)
		},
	}

	flags.register(cmd)

	return cmd
}

func newEntityUpdateCommand[T any, PT entityRecord[T]](label string, manager managerFunc[T]) *cobra.Command {
	flags := &writeFlags{}

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + label,
		Long:  "Update a " + label + ". Only the given flags are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			fields, err := flags.fields(cmd)
			if err != nil {
				return err
			}

			opts, err := flags.writeOptions()
			if err != nil {
				return err
			}

			if len(fields) == 0 && len(opts) == 0 {
				return constants.ErrNothingToUpdate
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			record, err := manager(client).Update(cmd.Context(), kanka.ID(id), fields, opts...)
			if err != nil {
				return err
			}

			return renderEntity[T, PT](cmd, record)
		},
	}

	flags.register(cmd)

	return cmd
}

func newEntityDeleteCommand[T any](label string, manager managerFunc[T]) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + label,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !force && !confirm(cmd, fmt.Sprintf("Delete %s %d?", label, id)) {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := manager(client).Delete(cmd.Context(), kanka.ID(id)); err != nil {
				return err
			}

			printMessage(cmd, "Deleted %s %d", label, id)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", question)

	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
