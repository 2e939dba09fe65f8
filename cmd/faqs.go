package cmd

import (
	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/rogersnm/dolphin/internal/store"
)

var faqsResource = &resource[model.FAQ, model.FAQFields]{
	use:   "faqs",
	short: "Manage frequently asked questions",
	api: store.Resource{
		Singular: "FAQ",
		Plural:   "FAQs",
		Path:     "/faqs",
	},
	batch: true,
	fields: []field[model.FAQFields]{
		{key: "question_en", title: "Question (English)", ptr: func(f *model.FAQFields) *string { return &f.QuestionEN }},
		{key: "question_ar", title: "السؤال (عربي)", ptr: func(f *model.FAQFields) *string { return &f.QuestionAR }},
		{key: "answer_en", title: "Answer (English)", long: true, ptr: func(f *model.FAQFields) *string { return &f.AnswerEN }},
		{key: "answer_ar", title: "الإجابة (عربي)", long: true, ptr: func(f *model.FAQFields) *string { return &f.AnswerAR }},
	},
	table: markdown.RenderFAQTable,
	header: func(f model.FAQ) (string, []string) {
		return bilingualTitle(f.QuestionEN, f.QuestionAR), []string{
			markdown.RenderField("ID", f.ID.String()),
			markdown.RenderField("Created", timestamp(f.CreatedAt.Time)),
			markdown.RenderField("Updated", timestamp(f.UpdatedAt.Time)),
		}
	},
	sections: func(f model.FAQ) []markdown.Section {
		return []markdown.Section{
			{Heading: "Answer", Body: f.AnswerEN},
			{Heading: "الإجابة", Body: f.AnswerAR},
		}
	},
}

func init() {
	rootCmd.AddCommand(faqsResource.command())
}
