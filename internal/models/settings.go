package models

// SiteSettings is the singleton settings document for the site. Top-level
// groups are pointers so the store can distinguish "group absent" from "group
// present with zero values"; the settings resolver guarantees every group is
// non-nil before the value reaches callers.
type SiteSettings struct {
	Contact    *ContactSettings   `json:"contact,omitempty"`
	Social     *SocialSettings    `json:"social,omitempty"`
	Content    *ContentSettings   `json:"content,omitempty"`
	HomePage   *HomePageSettings  `json:"homePage,omitempty"`
	Analytics  *AnalyticsSettings `json:"analytics,omitempty"`
	SEO        *SEOSettings       `json:"seo,omitempty"`
	HeaderLogo string             `json:"headerLogo,omitempty"`
	FooterLogo string             `json:"footerLogo,omitempty"`
}

// ContactSettings holds contact details shown across the site
type ContactSettings struct {
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// SocialSettings holds social profile links
type SocialSettings struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
}

// ContentSettings holds long-form site copy
type ContentSettings struct {
	AboutUsShort   string `json:"aboutUsShort"`
	AboutUsFull    string `json:"aboutUsFull"`
	PrivacyPolicy  string `json:"privacyPolicy"`
	TermsOfService string `json:"termsOfService"`
}

// HomePageSettings holds the landing page hero configuration
type HomePageSettings struct {
	HeroTitle       string `json:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle"`
	HeroImage       string `json:"heroImage"`
	ShowWhyChooseUs bool   `json:"showWhyChooseUs"`
}

// AnalyticsSettings holds third-party tracking identifiers
type AnalyticsSettings struct {
	GoogleSearchConsole string `json:"googleSearchConsole,omitempty"`
	FacebookPixel       string `json:"facebookPixel,omitempty"`
}

// SEOSettings holds metadata used in the document head
type SEOSettings struct {
	SiteTitle       string `json:"siteTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Favicon         string `json:"favicon,omitempty"`
}
