package model

import "strings"

type SettingsFields struct {
	SiteNameEN string `json:"site_name_en" schema:"site_name_en" yaml:"site_name_en"`
	SiteNameAR string `json:"site_name_ar" schema:"site_name_ar" yaml:"site_name_ar"`
	Email      string `json:"email" schema:"email" yaml:"email"`
	Phone      string `json:"phone" schema:"phone" yaml:"phone"`
	AddressEN  string `json:"address_en" schema:"address_en" yaml:"address_en"`
	AddressAR  string `json:"address_ar" schema:"address_ar" yaml:"address_ar"`
	Facebook   string `json:"facebook" schema:"facebook" yaml:"facebook"`
	Instagram  string `json:"instagram" schema:"instagram" yaml:"instagram"`
	Twitter    string `json:"twitter" schema:"twitter" yaml:"twitter"`
	LinkedIn   string `json:"linkedin" schema:"linkedin" yaml:"linkedin"`
	WhatsApp   string `json:"whatsapp" schema:"whatsapp" yaml:"whatsapp"`
}

func (f SettingsFields) Validate() error {
	var v checker
	v.required("site_name_en", f.SiteNameEN)
	v.required("site_name_ar", f.SiteNameAR)
	if e := strings.TrimSpace(f.Email); e != "" && !strings.Contains(e, "@") {
		v.fail("email", "invalid email address")
	}
	return v.err()
}

// Settings is the single site-wide settings record.
type Settings struct {
	ID ID `json:"id"`
	SettingsFields
	UpdatedAt Timestamp `json:"updated_at"`
}

func (s Settings) EntityID() ID                 { return s.ID }
func (s Settings) ImageURL() string             { return "" }
func (s Settings) WithImageURL(string) Settings { return s }

func (s Settings) Draft() Draft[SettingsFields] {
	return Draft[SettingsFields]{Fields: s.SettingsFields}
}
