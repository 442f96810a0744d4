package app

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/identity"
)

func newProfileCmd() *cobra.Command {
	var flagName string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the anonymous reader profile",
		Long: `The reader profile is a locally generated anonymous identity that signs
comments and "want to read" reactions. It is not an account and grants
no access.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagName != "" {
				p, err := identity.LoadProfile(profileDir())
				if err != nil {
					return err
				}
				if p == nil {
					if p, err = identity.NewProfile(profileDir(), flagName); err != nil {
						return err
					}
					ok("created reader profile %q", p.DisplayName)
					return nil
				}
				p.DisplayName = flagName
				if err := p.Save(profileDir()); err != nil {
					return err
				}
				ok("renamed reader profile to %q", p.DisplayName)
				return nil
			}

			p, err := identity.LoadProfile(profileDir())
			if err != nil {
				return err
			}
			if p == nil {
				warn("no reader profile yet — run 'hondana profile --name <name>'")
				return nil
			}
			header("Reader profile")
			printField("name", p.DisplayName)
			printField("anonymous id", p.AnonymousID)
			printField("reactions", strconv.Itoa(len(p.ReactedBookIDs)))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "Set the display name")
	return cmd
}
