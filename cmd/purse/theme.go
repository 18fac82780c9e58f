package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/cli"
	"github.com/spf13/cobra"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}

			if len(args) == 0 {
				mode := a.sess.ThemeMode
				if mode == "" {
					mode = "dark"
				}
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Current theme: %s", mode)))
				return nil
			}

			mode := args[0]
			if mode != "light" && mode != "dark" {
				return fmt.Errorf("unknown theme %q (valid: light, dark)", mode)
			}
			if err := a.store.SetThemeMode(ctx, mode); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Theme set to %s", mode)))
			return nil
		},
	}
}
