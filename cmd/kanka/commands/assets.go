package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

var assetTypeNames = map[int]string{
	constants.AssetTypeFile:  "file",
	constants.AssetTypeLink:  "link",
	constants.AssetTypeAlias: "alias",
}

// assetFlags are the attributes shared by every asset kind.
type assetFlags struct {
	name       string
	visibility string
	pinned     bool
}

func (f *assetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "asset name")
	cmd.Flags().StringVar(&f.visibility, "visibility", "", "all, admin, admin-self, self or members")
	cmd.Flags().BoolVar(&f.pinned, "pinned", false, "pin the asset to the entity overview")
}

func (f *assetFlags) parsedVisibility() (kanka.Visibility, error) {
	if f.visibility == "" {
		return kanka.VisibilityDefault, nil
	}

	return kanka.ParseVisibility(f.visibility)
}

// NewAssetsCommand creates the assets command group.
func NewAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "Manage entity assets",
		Long:    "Manage the files, links and aliases attached to an entity",
	}

	cmd.AddCommand(newAssetsListCommand())
	cmd.AddCommand(newAssetsGetCommand())
	cmd.AddCommand(newAssetsAddFileCommand())
	cmd.AddCommand(newAssetsAddLinkCommand())
	cmd.AddCommand(newAssetsAddAliasCommand())
	cmd.AddCommand(newAssetsDeleteCommand())

	return cmd
}

func newAssetsListCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list ENTITY_ID",
		Short: "List the assets of an entity",
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

			assets, err := client.EntityResources().ListAssets(cmd.Context(), kanka.EntityID(entityID),
				&kanka.PageOptions{Page: page, Limit: limit})
			if err != nil {
				return err
			}

			err = render(cmd, assets, func(table *tablewriter.Table) error {
				table.Header("ID", "Type", "Name", "Visibility", "Pinned", "URL")

				for i := range assets.Data {
					asset := &assets.Data[i]

					err := appendRows(table, []string{
						strconv.Itoa(asset.ID),
						assetTypeName(asset.TypeID),
						asset.Name,
						asset.VisibilityID.String(),
						strconv.FormatBool(asset.IsPinned),
						assetURL(asset),
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

			printPageFooter(cmd, assets.Meta)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "assets per page")

	return cmd
}

func newAssetsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTITY_ID ASSET_ID",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, assetID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			asset, err := client.EntityResources().GetAsset(cmd.Context(), kanka.EntityID(entityID), assetID)
			if err != nil {
				return err
			}

			return renderAsset(cmd, asset)
		},
	}
}

func newAssetsAddFileCommand() *cobra.Command {
	flags := &assetFlags{}

	cmd := &cobra.Command{
		Use:   "add-file ENTITY_ID PATH",
		Short: "Upload a file asset",
		Long:  "Upload a local file as an asset. The name defaults to the file name without its extension.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			visibility, err := flags.parsedVisibility()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			asset, err := client.EntityResources().CreateFileAsset(cmd.Context(), kanka.EntityID(entityID), args[1],
				&kanka.FileAssetCreate{Name: flags.name, Visibility: visibility, IsPinned: flags.pinned})
			if err != nil {
				return err
			}

			return renderAsset(cmd, asset)
		},
	}

	flags.register(cmd)

	return cmd
}

func newAssetsAddLinkCommand() *cobra.Command {
	var (
		flags   = &assetFlags{}
		linkURL string
		icon    string
	)

	cmd := &cobra.Command{
		Use:   "add-link ENTITY_ID",
		Short: "Attach a link asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if flags.name == "" {
				return constants.ErrNameRequired
			}

			if linkURL == "" {
				return constants.ErrURLRequired
			}

			visibility, err := flags.parsedVisibility()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			asset, err := client.EntityResources().CreateLinkAsset(cmd.Context(), kanka.EntityID(entityID), &kanka.LinkAssetCreate{
				Name:       flags.name,
				URL:        linkURL,
				Icon:       icon,
				Visibility: visibility,
				IsPinned:   flags.pinned,
			})
			if err != nil {
				return err
			}

			return renderAsset(cmd, asset)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&linkURL, "url", "", "link target")
	cmd.Flags().StringVar(&icon, "icon", "", "Font Awesome icon class, e.g. fa-solid fa-book")

	return cmd
}

func newAssetsAddAliasCommand() *cobra.Command {
	flags := &assetFlags{}

	cmd := &cobra.Command{
		Use:   "add-alias ENTITY_ID",
		Short: "Add an alias for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if flags.name == "" {
				return constants.ErrNameRequired
			}

			visibility, err := flags.parsedVisibility()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			asset, err := client.EntityResources().CreateAliasAsset(cmd.Context(), kanka.EntityID(entityID),
				&kanka.AliasAssetCreate{Name: flags.name, Visibility: visibility, IsPinned: flags.pinned})
			if err != nil {
				return err
			}

			return renderAsset(cmd, asset)
		},
	}

	flags.register(cmd)

	return cmd
}

func newAssetsDeleteCommand() *cobra.Command {
	var force, gallery bool

	cmd := &cobra.Command{
		Use:   "delete ENTITY_ID ASSET_ID",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, assetID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			if !force && !confirm(cmd, "Delete asset "+strconv.Itoa(assetID)+"?") {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			err = client.EntityResources().DeleteAsset(cmd.Context(), kanka.EntityID(entityID), assetID,
				&kanka.DeleteAssetOptions{DeleteGalleryImage: gallery})
			if err != nil {
				return err
			}

			printMessage(cmd, "Deleted asset %d", assetID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&gallery, "gallery", false, "also delete the gallery image behind a file asset")

	return cmd
}

func renderAsset(cmd *cobra.Command, asset *kanka.EntityAsset) error {
	return renderRecord(cmd, asset, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		return appendRows(table,
			[]string{"ID", strconv.Itoa(asset.ID)},
			[]string{"Entity ID", strconv.Itoa(asset.EntityID)},
			[]string{"Type", assetTypeName(asset.TypeID)},
			[]string{"Name", asset.Name},
			[]string{"Visibility", asset.VisibilityID.String()},
			[]string{"Pinned", strconv.FormatBool(asset.IsPinned)},
			[]string{"URL", formatConfigValue(assetURL(asset))},
		)
	})
}

func assetTypeName(typeID int) string {
	if name, ok := assetTypeNames[typeID]; ok {
		return name
	}

	return strconv.Itoa(typeID)
}

// assetURL is the file URL, or the target of a link asset.
func assetURL(asset *kanka.EntityAsset) string {
	if asset.URL != "" {
		return asset.URL
	}

	link, _ := asset.Metadata["url"].(string)

	return link
}
