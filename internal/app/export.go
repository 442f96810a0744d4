package app

import (
	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/book"
)

func newExportCmd() *cobra.Command {
	var (
		flagSearch string
		flagAuthor string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static HTML index of the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}

			books := book.Filter{Search: flagSearch, Author: flagAuthor}.Apply(lib.Mirror().Books())
			path, err := cacheMgr.WriteHTMLIndex(books)
			if err != nil {
				return err
			}
			ok("wrote %s (%d books)", path, len(books))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSearch, "search", "", "Only export books matching this search")
	cmd.Flags().StringVar(&flagAuthor, "author", "", "Only export books by this author")
	return cmd
}
