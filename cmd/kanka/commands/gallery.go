package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// NewGalleryCommand creates the gallery command group.
func NewGalleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage the campaign gallery",
		Long:  "List, upload and delete the images and folders of the campaign gallery",
	}

	cmd.AddCommand(newGalleryListCommand())
	cmd.AddCommand(newGalleryGetCommand())
	cmd.AddCommand(newGalleryUploadCommand())
	cmd.AddCommand(newGalleryDeleteCommand())

	return cmd
}

func newGalleryListCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gallery images",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			images, err := client.Gallery().List(cmd.Context(), &kanka.PageOptions{Page: page, Limit: limit})
			if err != nil {
				return err
			}

			err = render(cmd, images, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Ext", "Size", "Folder", "Visibility")

				for _, image := range images.Data {
					err := appendRows(table, []string{
						image.ID,
						image.Name,
						image.Ext,
						strconv.Itoa(int(image.Size)),
						strconv.FormatBool(image.IsFolder),
						image.VisibilityID.String(),
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

			printPageFooter(cmd, images.Meta)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "images per page")

	return cmd
}

func newGalleryGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one gallery image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			image, err := client.Gallery().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderGalleryImage(cmd, image)
		},
	}
}

func newGalleryUploadCommand() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "upload PATH",
		Short: "Upload an image to the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			image, err := client.Gallery().Upload(cmd.Context(), args[0], folderID)
			if err != nil {
				return err
			}

			return renderGalleryImage(cmd, image)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "gallery folder id")

	return cmd
}

func newGalleryDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a gallery image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, "Delete gallery image "+args[0]+"?") {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Gallery().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			printMessage(cmd, "Deleted gallery image %s", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func renderGalleryImage(cmd *cobra.Command, image *kanka.GalleryImage) error {
	return renderRecord(cmd, image, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		return appendRows(table,
			[]string{"ID", image.ID},
			[]string{"Name", image.Name},
			[]string{"Ext", formatConfigValue(image.Ext)},
			[]string{"Size", strconv.Itoa(int(image.Size))},
			[]string{"Folder ID", formatConfigValue(image.FolderID)},
			[]string{"Path", formatConfigValue(image.Path)},
			[]string{"Created", formatTime(image.CreatedAt)},
		)
	})
}
