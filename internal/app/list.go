package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/book"
)

func newListCmd() *cobra.Command {
	var (
		flagSearch string
		flagAuthor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the journal's books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}

			books := book.Filter{Search: flagSearch, Author: flagAuthor}.Apply(lib.Mirror().Books())
			if len(books) == 0 {
				fmt.Println("該当する本が見つかりませんでした")
				return nil
			}

			header("Books (%d)", len(books))
			for _, b := range books {
				line := fmt.Sprintf("  %3d  %s", b.ID, b.Title)
				if b.Author != "" {
					line += color.New(color.Faint).Sprintf("  — %s", b.Author)
				}
				if len(b.Keywords) > 0 {
					line += "  " + color.CyanString(strings.Join(b.Keywords, ", "))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSearch, "search", "", "Case-insensitive search over title, author and description")
	cmd.Flags().StringVar(&flagAuthor, "author", "", "Filter by exact author name")
	return cmd
}

// loadMirror fills the mirror for non-interactive commands, falling
// back to the snapshot when the remote is unreachable.
func loadMirror(cmd *cobra.Command) error {
	fromRemote, err := lib.Startup(cmd.Context())
	if err != nil {
		return err
	}
	if !fromRemote {
		warn("remote unreachable — showing the last local snapshot")
	}
	return nil
}
