package model

const (
	MaxReviewNameLen        = 120
	MaxReviewDescriptionLen = 1000
)

type ReviewFields struct {
	NameEN        string `json:"name_en" schema:"name_en" yaml:"name_en"`
	NameAR        string `json:"name_ar" schema:"name_ar" yaml:"name_ar"`
	DescriptionEN string `json:"description_en" schema:"description_en" yaml:"description_en"`
	DescriptionAR string `json:"description_ar" schema:"description_ar" yaml:"description_ar"`
}

func (f ReviewFields) Validate() error {
	var v checker
	v.bilingual("name", f.NameEN, f.NameAR, MaxReviewNameLen)
	v.bilingual("description", f.DescriptionEN, f.DescriptionAR, MaxReviewDescriptionLen)
	return v.err()
}

type Review struct {
	ID ID `json:"id"`
	ReviewFields
	Image     string    `json:"image,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (r Review) EntityID() ID     { return r.ID }
func (r Review) ImageURL() string { return r.Image }

func (r Review) WithImageURL(url string) Review {
	r.Image = url
	return r
}

func (r Review) Draft() Draft[ReviewFields] {
	return Draft[ReviewFields]{Fields: r.ReviewFields, Image: Image{URL: r.Image}}
}
