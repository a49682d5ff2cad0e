package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"careconnect/internal/models"
	"careconnect/internal/service"
	"careconnect/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change caregiver preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every setting",
			Args:  cobra.NoArgs,
			RunE:  showSettings,
		},
		&cobra.Command{
			Use:   "get <field>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE:  getSetting,
		},
		&cobra.Command{
			Use:   "set <field> <value>",
			Short: "Change one setting",
			Long: `Changes one setting and prints the value in effect afterwards.

Fields: handedness (left, right), text_size (small, medium, large),
reminder_frequency (daily, weekly, custom), notifications, high_contrast,
a11y_overlay (true, false).

An unsupported handedness is ignored and the current mode is kept. Other
fields report an error.`,
			Args: cobra.ExactArgs(2),
			RunE: setSetting,
		},
		&cobra.Command{
			Use:   "handedness-mode <left|right|toggle>",
			Short: "Set the handedness mode, including the toggle mode",
			Args:  cobra.ExactArgs(1),
			RunE:  setHandednessMode,
		},
		&cobra.Command{
			Use:   "toggle-handedness",
			Short: "Swap between left and right handed layouts",
			Args:  cobra.NoArgs,
			RunE:  toggleHandedness,
		},
	)
	return cmd
}

func showSettings(cmd *cobra.Command, _ []string) error {
	app := service.FromContext(cmd.Context())

	rows := make([][]string, 0, len(settings.Fields))
	for _, field := range settings.Fields {
		v, err := app.Settings.Get(field)
		if err != nil {
			return err
		}
		rows = append(rows, []string{field, v})
	}
	renderTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, rows)
	return nil
}

func getSetting(cmd *cobra.Command, args []string) error {
	app := service.FromContext(cmd.Context())

	v, err := app.Settings.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func setSetting(cmd *cobra.Command, args []string) error {
	app := service.FromContext(cmd.Context())

	field, err := settings.NormalizeField(args[0])
	if err != nil {
		return err
	}
	applied, err := app.Settings.SetField(field, args[1])
	if err != nil {
		return err
	}
	if applied != args[1] {
		renderNote(cmd.ErrOrStderr(), "%s %q not accepted, keeping %s", field, args[1], applied)
	}
	fmt.Fprintln(cmd.OutOrStdout(), applied)
	return nil
}

func setHandednessMode(cmd *cobra.Command, args []string) error {
	app := service.FromContext(cmd.Context())

	h, err := app.Settings.SetHandednessMode(models.Handedness(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	return nil
}

func toggleHandedness(cmd *cobra.Command, _ []string) error {
	app := service.FromContext(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), app.Settings.ToggleHandedness())
	return nil
}
