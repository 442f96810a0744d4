package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/chat"
)

func newChatCmd() *cobra.Command {
	var (
		flagCopy bool
		flagInfo bool
	)

	cmd := &cobra.Command{
		Use:   "chat <id>",
		Short: "Build the pre-filled chat URL for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}
			b, err := findBook(args[0])
			if err != nil {
				return err
			}

			if flagInfo {
				fmt.Println(chat.CopyText(*b))
				return nil
			}

			url := chatb.URL(*b)
			fmt.Println(url)
			if flagCopy {
				if err := chat.CopyToClipboard(url); err != nil {
					warn("%v", err)
					return nil
				}
				ok("copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagCopy, "copy", false, "Also copy the URL to the clipboard")
	cmd.Flags().BoolVar(&flagInfo, "info", false, "Print the full book dossier instead of the URL")
	return cmd
}
