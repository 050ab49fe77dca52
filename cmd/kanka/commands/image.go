package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// NewImageCommand creates the image command group.
func NewImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image",
		Aliases: []string{"images"},
		Short:   "Manage entity images",
		Long:    "Show, replace and remove the main image or the header image of an entity",
	}

	cmd.AddCommand(newImageGetCommand())
	cmd.AddCommand(newImageSetCommand())
	cmd.AddCommand(newImageDeleteCommand())

	return cmd
}

func newImageGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTITY_ID",
		Short: "Show the images of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			info, err := client.EntityResources().GetImage(cmd.Context(), kanka.EntityID(entityID))
			if err != nil {
				return err
			}

			return renderImageInfo(cmd, info)
		},
	}
}

func newImageSetCommand() *cobra.Command {
	var header bool

	cmd := &cobra.Command{
		Use:   "set ENTITY_ID PATH",
		Short: "Upload a new image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			info, err := client.EntityResources().SetImage(cmd.Context(), kanka.EntityID(entityID), args[1], header)
			if err != nil {
				return err
			}

			return renderImageInfo(cmd, info)
		},
	}

	cmd.Flags().BoolVar(&header, "header", false, "replace the header image instead of the main image")

	return cmd
}

func newImageDeleteCommand() *cobra.Command {
	var header, force bool

	cmd := &cobra.Command{
		Use:   "delete ENTITY_ID",
		Short: "Remove an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			slot := "image"
			if header {
				slot = "header image"
			}

			if !force && !confirm(cmd, "Remove the "+slot+" of entity "+args[0]+"?") {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.EntityResources().DeleteImage(cmd.Context(), kanka.EntityID(entityID), header); err != nil {
				return err
			}

			printMessage(cmd, "Removed the %s of entity %d", slot, entityID)

			return nil
		},
	}

	cmd.Flags().BoolVar(&header, "header", false, "remove the header image instead of the main image")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func renderImageInfo(cmd *cobra.Command, info *kanka.EntityImageInfo) error {
	return renderRecord(cmd, info, func(table *tablewriter.Table) error {
		table.Header("Slot", "UUID", "Full", "Thumbnail")

		for _, slot := range []struct {
			name  string
			image *kanka.EntityImage
		}{
			{name: "image", image: info.Image},
			{name: "header", image: info.Header},
		} {
			if slot.image == nil {
				if err := appendRows(table, []string{slot.name, constants.NotAvailable, "", ""}); err != nil {
					return err
				}

				continue
			}

			err := appendRows(table, []string{slot.name, slot.image.UUID, slot.image.Full, slot.image.Thumbnail})
			if err != nil {
				return err
			}
		}

		return nil
	})
}
