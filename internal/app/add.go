package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/book"
)

func newAddCmd() *cobra.Command {
	var d draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}
			draft, err := d.toDraft(book.Draft{})
			if err != nil {
				return err
			}
			if err := lib.Save(cmd.Context(), draft); err != nil {
				return err
			}
			ok("added %q", draft.Title)
			return nil
		},
	}

	d.register(cmd)
	return cmd
}

func newEditCmd() *cobra.Command {
	var d draftFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book's journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}
			b, err := findBook(args[0])
			if err != nil {
				return err
			}

			draft, err := d.toDraft(book.DraftOf(*b))
			if err != nil {
				return err
			}
			if err := lib.Save(cmd.Context(), draft); err != nil {
				return err
			}
			ok("saved %q", draft.Title)
			return nil
		},
	}

	d.register(cmd)
	return cmd
}

// draftFlags are the book field flags shared by add and edit. Unset
// flags keep the existing value on edit.
type draftFlags struct {
	title       string
	author      string
	imageURL    string
	intro       string
	summary     string
	keywords    string
	quotes      []string
	reflections []string
}

func (d *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.title, "title", "", "Book title")
	cmd.Flags().StringVar(&d.author, "author", "", "Author name")
	cmd.Flags().StringVar(&d.imageURL, "image", "", "Cover image URL")
	cmd.Flags().StringVar(&d.intro, "intro", "", "Introduction text")
	cmd.Flags().StringVar(&d.summary, "summary", "", "Summary text")
	cmd.Flags().StringVar(&d.keywords, "keywords", "", "Comma-separated keywords")
	cmd.Flags().StringArrayVar(&d.quotes, "quote", nil, "Quote as 'title|content|page' (repeatable, replaces existing)")
	cmd.Flags().StringArrayVar(&d.reflections, "reflection", nil, "Reflection as 'title|content' (repeatable, replaces existing)")
}

func (d *draftFlags) toDraft(base book.Draft) (book.Draft, error) {
	if d.title != "" {
		base.Title = d.title
	}
	if d.author != "" {
		base.Author = d.author
	}
	if d.imageURL != "" {
		base.ImageURL = d.imageURL
	}
	if d.intro != "" {
		base.Introduction = d.intro
	}
	if d.summary != "" {
		base.Summary = d.summary
	}
	if d.keywords != "" {
		base.Keywords = d.keywords
	}
	if d.quotes != nil {
		base.Quotes = nil
		for _, raw := range d.quotes {
			parts := strings.SplitN(raw, "|", 3)
			if len(parts) < 2 {
				return base, fmt.Errorf("invalid --quote %q, want 'title|content|page'", raw)
			}
			q := book.Quote{Title: parts[0], Content: parts[1]}
			if len(parts) == 3 {
				q.PageNumber = parts[2]
			}
			base.Quotes = append(base.Quotes, q)
		}
	}
	if d.reflections != nil {
		base.Reflections = nil
		for _, raw := range d.reflections {
			parts := strings.SplitN(raw, "|", 2)
			if len(parts) < 2 {
				return base, fmt.Errorf("invalid --reflection %q, want 'title|content'", raw)
			}
			base.Reflections = append(base.Reflections, book.Reflection{Title: parts[0], Content: parts[1]})
		}
	}
	return base, nil
}
