package model

type FAQFields struct {
	QuestionEN string `json:"question_en" schema:"question_en" yaml:"question_en"`
	QuestionAR string `json:"question_ar" schema:"question_ar" yaml:"question_ar"`
	AnswerEN   string `json:"answer_en" schema:"answer_en" yaml:"answer_en"`
	AnswerAR   string `json:"answer_ar" schema:"answer_ar" yaml:"answer_ar"`
}

func (f FAQFields) Validate() error {
	var v checker
	v.bilingual("question", f.QuestionEN, f.QuestionAR, 0)
	v.bilingual("answer", f.AnswerEN, f.AnswerAR, 0)
	return v.err()
}

// FAQ has no image; the image methods are no-ops.
type FAQ struct {
	ID ID `json:"id"`
	FAQFields
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (f FAQ) EntityID() ID            { return f.ID }
func (f FAQ) ImageURL() string        { return "" }
func (f FAQ) WithImageURL(string) FAQ { return f }
func (f FAQ) Draft() Draft[FAQFields] { return Draft[FAQFields]{Fields: f.FAQFields} }
