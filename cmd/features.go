package cmd

import (
	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/rogersnm/dolphin/internal/store"
)

var featuresResource = &resource[model.Feature, model.Content]{
	use:   "features",
	short: "Manage features (\"Our Pros\")",
	api: store.Resource{
		Singular: "feature",
		Plural:   "features",
		Path:     "/features",
		Override: "PATCH",
	},
	image:  true,
	fields: contentFields(),
	table:  markdown.RenderFeatureTable,
	header: func(f model.Feature) (string, []string) {
		return bilingualTitle(f.TitleEN, f.TitleAR), []string{
			markdown.RenderField("ID", f.ID.String()),
			markdown.RenderField("Image", f.Image),
			markdown.RenderField("Created", timestamp(f.CreatedAt.Time)),
			markdown.RenderField("Updated", timestamp(f.UpdatedAt.Time)),
		}
	},
	sections: func(f model.Feature) []markdown.Section { return contentSections(f.Content) },
}

func init() {
	rootCmd.AddCommand(featuresResource.command())
}
