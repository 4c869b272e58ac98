package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joestump/taggable/internal/logging"
	"github.com/joestump/taggable/internal/store"
	"github.com/joestump/taggable/internal/taggable"
)

func newTagsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Query tags",
	}
	cmd.AddCommand(newTagsCountCmd(configPath))
	cmd.AddCommand(newTagsResourcesCmd(configPath))
	cmd.AddCommand(newTagsSplitCmd())
	return cmd
}

// newManager opens the configured database and returns a manager over it.
func newManager(configPath string) (*taggable.Manager, func(), error) {
	e, err := setup(configPath, true)
	if err != nil {
		return nil, nil, err
	}
	m := taggable.NewManager(store.New(e.db),
		taggable.WithSeparator(e.cfg.Tags.Separator),
		taggable.WithLogger(logging.New("tags")),
	)
	return m, e.Close, nil
}

func newTagsCountCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "count <resource-type>",
		Short: "Count resources per tag, most used first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done, err := newManager(*configPath)
			if err != nil {
				return err
			}
			defer done()

			counts, err := m.TagsWithCount(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tCOUNT")
			for _, c := range counts {
				fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of tags (0 for all)")
	return cmd
}

func newTagsResourcesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resources <resource-type> <tag>",
		Short: "List the ids of resources tagged with a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done, err := newManager(*configPath)
			if err != nil {
				return err
			}
			defer done()

			ids, err := m.ResourceIDsForTag(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newTagsSplitCmd() *cobra.Command {
	var sep string
	cmd := &cobra.Command{
		Use:   "split <text>",
		Short: "Show how a tag string is split into names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := taggable.SplitTagNames(args[0], sep)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "separator", taggable.DefaultSeparator, "tag separator")
	return cmd
}
