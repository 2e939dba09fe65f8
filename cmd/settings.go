package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/dolphin/internal/api"
	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/rogersnm/dolphin/internal/store"
	"github.com/spf13/cobra"
)

var settingsFields = []field[model.SettingsFields]{
	{key: "site_name_en", title: "Site name (English)", ptr: func(f *model.SettingsFields) *string { return &f.SiteNameEN }},
	{key: "site_name_ar", title: "اسم الموقع (عربي)", ptr: func(f *model.SettingsFields) *string { return &f.SiteNameAR }},
	{key: "email", title: "Email", ptr: func(f *model.SettingsFields) *string { return &f.Email }},
	{key: "phone", title: "Phone", ptr: func(f *model.SettingsFields) *string { return &f.Phone }},
	{key: "address_en", title: "Address (English)", ptr: func(f *model.SettingsFields) *string { return &f.AddressEN }},
	{key: "address_ar", title: "العنوان (عربي)", ptr: func(f *model.SettingsFields) *string { return &f.AddressAR }},
	{key: "facebook", title: "Facebook URL", ptr: func(f *model.SettingsFields) *string { return &f.Facebook }},
	{key: "instagram", title: "Instagram URL", ptr: func(f *model.SettingsFields) *string { return &f.Instagram }},
	{key: "twitter", title: "Twitter URL", ptr: func(f *model.SettingsFields) *string { return &f.Twitter }},
	{key: "linkedin", title: "LinkedIn URL", ptr: func(f *model.SettingsFields) *string { return &f.LinkedIn }},
	{key: "whatsapp", title: "WhatsApp number", ptr: func(f *model.SettingsFields) *string { return &f.WhatsApp }},
}

// settingsStore reports to n; a nil n reports nothing.
func settingsStore(n store.Notifier) *store.Singleton[model.Settings, model.SettingsFields] {
	return store.NewSingleton[model.Settings, model.SettingsFields](client, store.SingletonResource{
		Name:       "settings",
		Path:       "/settings",
		SavePath:   "/settings/save",
		DeletePath: "/settings/delete",
	}, store.WithNotifier(n))
}

func isNotFound(err error) bool {
	var he *api.HTTPError
	return errors.As(err, &he) && he.Status == http.StatusNotFound
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the site settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the site settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsStore(termNotifier{cmd.ErrOrStderr()}).Fetch(cmd.Context())
		if err != nil {
			return err
		}
		fields := make([]string, 0, len(settingsFields)+1)
		for _, f := range settingsFields {
			fields = append(fields, markdown.RenderField(f.title, *f.ptr(&s.SettingsFields)))
		}
		fields = append(fields, markdown.RenderField("Updated", timestamp(s.UpdatedAt.Time)))
		fmt.Fprint(cmd.OutOrStdout(), markdown.RenderEntityHeader("Settings", fields))
		return nil
	},
}

var settingsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the site settings",
	Long:  "Save the site settings. Fields not given keep their current value.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notify := termNotifier{cmd.ErrOrStderr()}
		// No settings saved yet is a 404, which is not worth reporting.
		current := settingsStore(nil)
		var d model.Draft[model.SettingsFields]
		cur, err := current.Fetch(cmd.Context())
		switch {
		case err == nil:
			d = cur.Draft()
		case !isNotFound(err):
			notify.Failure(current.State().LastError)
			return err
		}

		provided := false
		if from, _ := cmd.Flags().GetString("from"); from != "" {
			doc, err := markdown.ReadDraft[model.SettingsFields](from)
			if err != nil {
				return err
			}
			d.Fields = doc.Fields
			provided = true
		}
		for _, f := range settingsFields {
			if cmd.Flags().Changed(f.flag()) {
				v, _ := cmd.Flags().GetString(f.flag())
				*f.ptr(&d.Fields) = v
				provided = true
			}
		}
		if !provided {
			if !stdinIsTerminal() {
				return fmt.Errorf("no fields given: pass flags or --from, or run in a terminal")
			}
			if err := settingsForm(&d.Fields); err != nil {
				return err
			}
		}

		d.Fields = model.Trim(d.Fields)
		if err := d.Fields.Validate(); err != nil {
			return err
		}
		if _, err := settingsStore(notify).Save(cmd.Context(), d); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved settings")
		return nil
	},
}

func settingsForm(values *model.SettingsFields) error {
	inputs := make([]huh.Field, 0, len(settingsFields))
	for _, f := range settingsFields {
		inputs = append(inputs, huh.NewInput().Title(f.title).Value(f.ptr(values)))
	}
	return huh.NewForm(huh.NewGroup(inputs...)).Run()
}

var settingsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the site settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirmDelete(cmd, "the site settings"); err != nil {
			return err
		}
		if err := settingsStore(termNotifier{cmd.ErrOrStderr()}).Delete(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted settings")
		return nil
	},
}

func init() {
	for _, f := range settingsFields {
		settingsSaveCmd.Flags().String(f.flag(), "", f.title)
	}
	settingsSaveCmd.Flags().String("from", "", "read fields from a markdown draft file with YAML frontmatter")
	settingsDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSaveCmd)
	settingsCmd.AddCommand(settingsDeleteCmd)
	rootCmd.AddCommand(settingsCmd)
}
