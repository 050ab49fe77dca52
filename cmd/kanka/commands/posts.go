package commands

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// NewPostsCommand creates the posts command group.
func NewPostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Manage entity posts",
		Long:    "Manage the posts attached to an entity. Entities are addressed by their universal entity id.",
	}

	cmd.AddCommand(newPostsListCommand())
	cmd.AddCommand(newPostsGetCommand())
	cmd.AddCommand(newPostsCreateCommand())
	cmd.AddCommand(newPostsUpdateCommand())
	cmd.AddCommand(newPostsDeleteCommand())

	return cmd
}

func newPostsListCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list ENTITY_ID",
		Short: "List the posts of an entity",
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

			posts, err := client.EntityResources().ListPosts(cmd.Context(), kanka.EntityID(entityID),
				&kanka.PageOptions{Page: page, Limit: limit})
			if err != nil {
				return err
			}

			err = render(cmd, posts, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Visibility", "Pinned", "Entry")

				for _, post := range posts.Data {
					err := appendRows(table, []string{
						strconv.Itoa(post.ID),
						post.Name,
						post.VisibilityID.String(),
						strconv.FormatBool(post.IsPinned),
						preview(post.Entry),
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

			printPageFooter(cmd, posts.Meta)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "posts per page")

	return cmd
}

func newPostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTITY_ID POST_ID",
		Short: "Show one post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, postID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			post, err := client.EntityResources().GetPost(cmd.Context(), kanka.EntityID(entityID), postID)
			if err != nil {
				return err
			}

			return renderPost(cmd, post)
		},
	}
}

func newPostsCreateCommand() *cobra.Command {
	var (
		flags      = &writeFlags{}
		visibility string
	)

	cmd := &cobra.Command{
		Use:   "create ENTITY_ID",
		Short: "Attach a post to an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[0])
			if err != nil {
				return err
			}

			post, err := postFromFlags(cmd, flags, visibility)
			if err != nil {
				return err
			}

			opts, err := flags.writeOptions()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			created, err := client.EntityResources().CreatePost(cmd.Context(), kanka.EntityID(entityID), post, opts...)
			if err != nil {
				return err
			}

			return renderPost(cmd, created)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&visibility, "visibility", "", "all, admin, admin-self, self or members")

	return cmd
}

// postFromFlags splits the write flags into a PostCreate.
func postFromFlags(cmd *cobra.Command, flags *writeFlags, visibility string) (*kanka.PostCreate, error) {
	fields, err := flags.fields(cmd)
	if err != nil {
		return nil, err
	}

	post := &kanka.PostCreate{Fields: fields}
	post.Name, _ = fields["name"].(string)
	post.Entry, _ = fields["entry"].(string)

	delete(fields, "name")
	delete(fields, "entry")

	if strings.TrimSpace(post.Name) == "" {
		return nil, constants.ErrNameRequired
	}

	if visibility != "" {
		post.Visibility, err = kanka.ParseVisibility(visibility)
		if err != nil {
			return nil, err
		}
	}

	return post, nil
}

func newPostsUpdateCommand() *cobra.Command {
	var (
		flags      = &writeFlags{}
		visibility string
	)

	cmd := &cobra.Command{
		Use:   "update ENTITY_ID POST_ID",
		Short: "Update a post",
		Long:  "Update a post. The API requires a name, so it is fetched when --name is not given.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, postID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			fields, err := flags.fields(cmd)
			if err != nil {
				return err
			}

			if visibility != "" {
				level, err := kanka.ParseVisibility(visibility)
				if err != nil {
					return err
				}

				fields["visibility_id"] = int(level)
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

			post, err := client.EntityResources().UpdatePost(cmd.Context(), kanka.EntityID(entityID), postID, fields, opts...)
			if err != nil {
				return err
			}

			return renderPost(cmd, post)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&visibility, "visibility", "", "all, admin, admin-self, self or members")

	return cmd
}

func newPostsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ENTITY_ID POST_ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, postID, err := parseIDPair(args)
			if err != nil {
				return err
			}

			if !force && !confirm(cmd, "Delete post "+strconv.Itoa(postID)+"?") {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.EntityResources().DeletePost(cmd.Context(), kanka.EntityID(entityID), postID); err != nil {
				return err
			}

			printMessage(cmd, "Deleted post %d", postID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func renderPost(cmd *cobra.Command, post *kanka.Post) error {
	return renderRecord(cmd, post, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		return appendRows(table,
			[]string{"ID", strconv.Itoa(post.ID)},
			[]string{"Entity ID", strconv.Itoa(post.EntityID)},
			[]string{"Name", post.Name},
			[]string{"Visibility", post.VisibilityID.String()},
			[]string{"Pinned", strconv.FormatBool(post.IsPinned)},
			[]string{"Updated", formatTime(post.UpdatedAt)},
			[]string{"Entry", preview(post.Entry)},
		)
	})
}

func parseIDPair(args []string) (int, int, error) {
	first, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}

	second, err := parseID(args[1])
	if err != nil {
		return 0, 0, err
	}

	return first, second, nil
}
