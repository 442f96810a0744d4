package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/book"
)

func newInfoCmd() *cobra.Command {
	var flagCounts bool

	cmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show a book's full journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}
			b, err := findBook(args[0])
			if err != nil {
				return err
			}

			header("Book: %s", b.Title)
			printField("author", b.Author)
			if b.ImageURL != "" {
				printField("image", b.ImageURL)
			}
			if len(b.Keywords) > 0 {
				printField("keywords", strings.Join(b.Keywords, ", "))
			}
			printField("introduction", b.Introduction)
			printField("summary", b.Summary)

			n := len(b.Quotes)
			if len(b.Reflections) > n {
				n = len(b.Reflections)
			}
			for i := 0; i < n; i++ {
				if i < len(b.Quotes) {
					q := b.Quotes[i]
					header("引用%d: %s", i+1, q.Title)
					fmt.Printf("  %q\n", q.Content)
					if q.PageNumber != "" {
						fmt.Printf("  p.%s\n", q.PageNumber)
					}
				}
				if i < len(b.Reflections) {
					r := b.Reflections[i]
					header("考察%d: %s", i+1, r.Title)
					fmt.Printf("  %s\n", r.Content)
				}
			}

			if flagCounts {
				counts, err := lib.Counts(cmd.Context(), *b)
				if err != nil {
					warn("could not load counts: %v", err)
				} else {
					printField("want to read", strconv.Itoa(counts.WantToRead))
					printField("comments", strconv.Itoa(counts.Comments))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagCounts, "counts", false, "Also fetch reaction and comment counts")
	return cmd
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}

// findBook resolves a numeric id argument against the mirror.
func findBook(arg string) (*book.Book, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid book id %q", arg)
	}
	b := lib.Mirror().ByID(id)
	if b == nil {
		return nil, fmt.Errorf("book %d not found (run 'hondana list')", id)
	}
	return b, nil
}
