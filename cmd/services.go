package cmd

import (
	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/rogersnm/dolphin/internal/store"
)

func contentFields() []field[model.Content] {
	return []field[model.Content]{
		{key: "title_en", title: "Title (English)", ptr: func(c *model.Content) *string { return &c.TitleEN }},
		{key: "title_ar", title: "العنوان (عربي)", ptr: func(c *model.Content) *string { return &c.TitleAR }},
		{key: "description_en", title: "Description (English)", long: true, ptr: func(c *model.Content) *string { return &c.DescriptionEN }},
		{key: "description_ar", title: "الوصف (عربي)", long: true, ptr: func(c *model.Content) *string { return &c.DescriptionAR }},
	}
}

func contentSections(c model.Content) []markdown.Section {
	return []markdown.Section{
		{Heading: "Description", Body: c.DescriptionEN},
		{Heading: "الوصف", Body: c.DescriptionAR},
	}
}

func bilingualTitle(en, ar string) string {
	switch {
	case en == "":
		return ar
	case ar == "":
		return en
	}
	return en + " / " + ar
}

var servicesResource = &resource[model.Service, model.Content]{
	use:   "services",
	short: "Manage services",
	api: store.Resource{
		Singular: "service",
		Plural:   "services",
		Path:     "/services",
		Override: "PUT",
	},
	image:  true,
	fields: contentFields(),
	table:  markdown.RenderServiceTable,
	header: func(s model.Service) (string, []string) {
		return bilingualTitle(s.TitleEN, s.TitleAR), []string{
			markdown.RenderField("ID", s.ID.String()),
			markdown.RenderField("Image", s.Image),
			markdown.RenderField("Created", timestamp(s.CreatedAt.Time)),
			markdown.RenderField("Updated", timestamp(s.UpdatedAt.Time)),
		}
	},
	sections: func(s model.Service) []markdown.Section { return contentSections(s.Content) },
}

func init() {
	rootCmd.AddCommand(servicesResource.command())
}
