package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book from the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMirror(cmd); err != nil {
				return err
			}
			b, err := findBook(args[0])
			if err != nil {
				return err
			}

			if !flagYes {
				fmt.Printf("Delete %q by %s? (y/N): ", b.Title, b.Author)
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := lib.Delete(cmd.Context(), b.ID); err != nil {
				return err
			}
			ok("deleted %q", b.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
