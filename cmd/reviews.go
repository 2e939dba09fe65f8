package cmd

import (
	"time"

	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/rogersnm/dolphin/internal/store"
)

var reviewsResource = &resource[model.Review, model.ReviewFields]{
	use:   "reviews",
	short: "Manage customer reviews",
	api: store.Resource{
		Singular: "review",
		Plural:   "reviews",
		Path:     "/reviews",
		Override: "PATCH",
	},
	image: true,
	fields: []field[model.ReviewFields]{
		{key: "name_en", title: "Name (English)", ptr: func(f *model.ReviewFields) *string { return &f.NameEN }},
		{key: "name_ar", title: "الاسم (عربي)", ptr: func(f *model.ReviewFields) *string { return &f.NameAR }},
		{key: "description_en", title: "Review (English)", long: true, ptr: func(f *model.ReviewFields) *string { return &f.DescriptionEN }},
		{key: "description_ar", title: "المراجعة (عربي)", long: true, ptr: func(f *model.ReviewFields) *string { return &f.DescriptionAR }},
	},
	table: markdown.RenderReviewTable,
	header: func(r model.Review) (string, []string) {
		return bilingualTitle(r.NameEN, r.NameAR), []string{
			markdown.RenderField("ID", r.ID.String()),
			markdown.RenderField("Image", r.Image),
			markdown.RenderField("Created", timestamp(r.CreatedAt.Time)),
			markdown.RenderField("Updated", timestamp(r.UpdatedAt.Time)),
		}
	},
	sections: func(r model.Review) []markdown.Section {
		return []markdown.Section{
			{Heading: "Review", Body: r.DescriptionEN},
			{Heading: "المراجعة", Body: r.DescriptionAR},
		}
	},
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func init() {
	rootCmd.AddCommand(reviewsResource.command())
}
