package model

const (
	MaxTitleLen       = 140
	MaxDescriptionLen = 2000
)

// Content is the bilingual title and description shared by services and
// features.
type Content struct {
	TitleEN       string `json:"title_en" schema:"title_en" yaml:"title_en"`
	TitleAR       string `json:"title_ar" schema:"title_ar" yaml:"title_ar"`
	DescriptionEN string `json:"description_en" schema:"description_en" yaml:"description_en"`
	DescriptionAR string `json:"description_ar" schema:"description_ar" yaml:"description_ar"`
}

func (c Content) Validate() error {
	var v checker
	v.bilingual("title", c.TitleEN, c.TitleAR, MaxTitleLen)
	v.bilingual("description", c.DescriptionEN, c.DescriptionAR, MaxDescriptionLen)
	return v.err()
}

type Service struct {
	ID ID `json:"id"`
	Content
	Image     string    `json:"image,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (s Service) EntityID() ID     { return s.ID }
func (s Service) ImageURL() string { return s.Image }

func (s Service) WithImageURL(url string) Service {
	s.Image = url
	return s
}

func (s Service) Draft() Draft[Content] {
	return Draft[Content]{Fields: s.Content, Image: Image{URL: s.Image}}
}

type Feature struct {
	ID ID `json:"id"`
	Content
	Image     string    `json:"image,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (f Feature) EntityID() ID     { return f.ID }
func (f Feature) ImageURL() string { return f.Image }

func (f Feature) WithImageURL(url string) Feature {
	f.Image = url
	return f
}

func (f Feature) Draft() Draft[Content] {
	return Draft[Content]{Fields: f.Content, Image: Image{URL: f.Image}}
}
