package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"careconnect/internal/service"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit the caregiver profile",
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the caregiver profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showProfile(cmd, asJSON)
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "Print the stored JSON document")

	var in profileInput
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setProfile(cmd, &in)
		},
	}
	set.Flags().StringVar(&in.name, "name", "", "Display name")
	set.Flags().StringVar(&in.titleRole, "title-role", "", "Title or role, e.g. RN")
	set.Flags().StringVar(&in.position, "position", "", "Position")
	set.Flags().StringVar(&in.organization, "organization", "", "Organization")
	set.Flags().StringVar(&in.email, "email", "", "Contact email")
	set.Flags().StringVar(&in.phone, "phone", "", "Contact phone")
	set.Flags().StringVar(&in.photoURI, "photo-uri", "", "Photo URI")
	set.Flags().BoolVar(&in.clearPhoto, "clear-photo", false, "Remove the photo")
	set.MarkFlagsMutuallyExclusive("photo-uri", "clear-photo")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := service.FromContext(cmd.Context())
			return app.Profiles.Clear(cmd.Context())
		},
	}

	cmd.AddCommand(show, set, clearCmd)
	return cmd
}

type profileInput struct {
	name, titleRole, position, organization, email, phone, photoURI string
	clearPhoto                                                      bool
}

func showProfile(cmd *cobra.Command, asJSON bool) error {
	app := service.FromContext(cmd.Context())

	p, err := app.Profiles.Load(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON {
		doc, err := p.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	}

	photo := "-"
	if p.PhotoURI != nil {
		photo = *p.PhotoURI
	}
	renderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, [][]string{
		{"Name", orDash(p.Name)},
		{"Title", orDash(p.TitleRole)},
		{"Position", orDash(p.Position)},
		{"Organization", orDash(p.Organization)},
		{"Email", orDash(p.Email)},
		{"Phone", orDash(p.Phone)},
		{"Photo", photo},
	})
	return nil
}

func setProfile(cmd *cobra.Command, in *profileInput) error {
	app := service.FromContext(cmd.Context())

	p, err := app.Profiles.Load(cmd.Context())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	assign := func(flag string, dst *string, v string) {
		if flags.Changed(flag) {
			*dst = v
		}
	}
	assign("name", &p.Name, in.name)
	assign("title-role", &p.TitleRole, in.titleRole)
	assign("position", &p.Position, in.position)
	assign("organization", &p.Organization, in.organization)
	assign("email", &p.Email, in.email)
	assign("phone", &p.Phone, in.phone)
	switch {
	case in.clearPhoto:
		p.PhotoURI = nil
	case flags.Changed("photo-uri"):
		uri := in.photoURI
		p.PhotoURI = &uri
	}

	if err := app.Profiles.Save(cmd.Context(), p); err != nil {
		return err
	}
	return showProfile(cmd, false)
}
