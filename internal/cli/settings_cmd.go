package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/chrona/internal/domain"
	"github.com/alexanderramin/chrona/internal/repository"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change user settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Store.State().Settings
			if s == nil {
				s = &domain.UserSettings{Theme: domain.ThemeDark, ColorMode: domain.ColorModeFull}
			}
			fmt.Printf("Theme:       %s\n", s.Theme)
			fmt.Printf("Color mode:  %s\n", s.ColorMode)
			fmt.Printf("Accent:      %s\n", s.AccentColor)
			if len(s.WorkspaceOrder) > 0 {
				fmt.Printf("Order:       %s\n", strings.Join(s.WorkspaceOrder, ", "))
			}
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var theme, mode, accent string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch repository.SettingsPatch
			if cmd.Flags().Changed("theme") {
				t := domain.Theme(theme)
				if t != domain.ThemeDark && t != domain.ThemeLight {
					return fmt.Errorf("invalid theme %q, expected dark or light", theme)
				}
				patch.Theme = &t
			}
			if cmd.Flags().Changed("color-mode") {
				m := domain.ColorMode(mode)
				if m != domain.ColorModeFull && m != domain.ColorModeMono {
					return fmt.Errorf("invalid color mode %q, expected full or monochromatic", mode)
				}
				patch.ColorMode = &m
			}
			if cmd.Flags().Changed("accent") {
				patch.AccentColor = &accent
			}

			if err := app.Mutator.UpdateSettings(context.Background(), patch).Wait(); err != nil {
				return err
			}
			fmt.Println("Updated settings")
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Theme (dark|light)")
	cmd.Flags().StringVar(&mode, "color-mode", "", "Color mode (full|monochromatic)")
	cmd.Flags().StringVar(&accent, "accent", "", "Accent color (hex)")

	return cmd
}
