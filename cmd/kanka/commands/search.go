package commands

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Search entities by name",
		Long:  "Search every entity type of the campaign. Results carry the universal entity id used by posts, assets and images.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			results, err := client.Search(cmd.Context(), strings.Join(args, " "), &kanka.PageOptions{Page: page, Limit: limit})
			if err != nil {
				return err
			}

			err = render(cmd, results, func(table *tablewriter.Table) error {
				table.Header("Entity ID", "ID", "Type", "Name", "Private")

				for _, result := range results.Data {
					err := appendRows(table, []string{
						strconv.Itoa(result.EntityID),
						strconv.Itoa(result.ID),
						result.Type,
						result.Name,
						strconv.FormatBool(result.IsPrivate),
					})
					if err != nil {
						return err
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			printPageFooter(cmd, results.Meta)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page")

	return cmd
}

// NewEntitiesCommand creates the entities command.
func NewEntitiesCommand() *cobra.Command {
	var (
		page    int
		limit   int
		types   []string
		tags    []int
		name    string
		private string
	)

	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List entities of every type",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := kanka.NewListOptions().WithPage(page).WithLimit(limit).WithName(name).WithTags(tags...)

			for _, typeName := range types {
				entityType, err := kanka.LookupEntityType(typeName)
				if err != nil {
					return err
				}

				opts = opts.WithTypes(entityType.Name)
			}

			if private != "" {
				isPrivate, err := strconv.ParseBool(private)
				if err != nil {
					return err
				}

				opts = opts.WithPrivate(isPrivate)
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			entities, err := client.Entities(cmd.Context(), opts)
			if err != nil {
				return err
			}

			err = render(cmd, entities, func(table *tablewriter.Table) error {
				table.Header("Entity ID", "ID", "Type", "Name", "Private", "Updated")

				for _, entity := range entities.Data {
					err := appendRows(table, []string{
						strconv.Itoa(entity.ID),
						strconv.Itoa(entity.ChildID),
						entity.Type,
						entity.Name,
						strconv.FormatBool(entity.IsPrivate),
						formatTime(entity.UpdatedAt),
					})
					if err != nil {
						return err
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			printPageFooter(cmd, entities.Meta)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "entities per page")
	cmd.Flags().StringSliceVar(&types, "types", nil, "entity types, e.g. character,location")
	cmd.Flags().IntSliceVar(&tags, "tags", nil, "tag ids")
	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().StringVar(&private, "private", "", "filter on the privacy flag (true or false)")

	return cmd
}
