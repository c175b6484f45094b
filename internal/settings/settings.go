// Package settings guarantees callers never observe a partially-populated
// site settings value. A compiled-in default document fills any group the
// persisted document is missing.
package settings

import "github.com/sredowan/uhud-builders-new/internal/models"

// Defaults returns a fresh copy of the compiled-in default settings
func Defaults() models.SiteSettings {
	return models.SiteSettings{
		Contact: &models.ContactSettings{
			Phone:    "+880 1700 000000",
			WhatsApp: "+8801700000000",
			Email:    "info@uhudbuilders.com",
			Address:  "House 12, Road 5, Dhanmondi, Dhaka",
		},
		Social: &models.SocialSettings{
			Facebook:  "https://facebook.com/uhudbuilders",
			Twitter:   "",
			Instagram: "https://instagram.com/uhudbuilders",
			LinkedIn:  "",
		},
		Content: &models.ContentSettings{
			AboutUsShort:   "Uhud Builders crafts modern residential and commercial spaces with uncompromising quality.",
			AboutUsFull:    "Uhud Builders has been shaping skylines with thoughtfully designed residential and commercial projects. From land acquisition to handover, every step is managed in-house so quality never leaves our hands.",
			PrivacyPolicy:  "",
			TermsOfService: "",
		},
		HomePage: &models.HomePageSettings{
			HeroTitle:       "Building Homes, Building Trust",
			HeroSubtitle:    "Premium residential projects in the heart of the city",
			HeroImage:       "/images/hero.jpg",
			ShowWhyChooseUs: true,
		},
		Analytics: &models.AnalyticsSettings{},
		SEO: &models.SEOSettings{
			SiteTitle:       "Uhud Builders Ltd",
			MetaDescription: "Premium residential and commercial building projects.",
		},
	}
}

// Resolve merges a persisted settings document over the defaults. The merge
// is shallow at the top-level group boundary: a group present in the
// persisted document replaces the default group wholesale, even if individual
// fields inside it are empty. Absent groups come entirely from the defaults.
// The admin UI relies on this group-granular behavior.
func Resolve(persisted *models.SiteSettings) models.SiteSettings {
	resolved := Defaults()
	if persisted == nil {
		return resolved
	}
	if persisted.Contact != nil {
		resolved.Contact = persisted.Contact
	}
	if persisted.Social != nil {
		resolved.Social = persisted.Social
	}
	if persisted.Content != nil {
		resolved.Content = persisted.Content
	}
	if persisted.HomePage != nil {
		resolved.HomePage = persisted.HomePage
	}
	if persisted.Analytics != nil {
		resolved.Analytics = persisted.Analytics
	}
	if persisted.SEO != nil {
		resolved.SEO = persisted.SEO
	}
	if persisted.HeaderLogo != "" {
		resolved.HeaderLogo = persisted.HeaderLogo
	}
	if persisted.FooterLogo != "" {
		resolved.FooterLogo = persisted.FooterLogo
	}
	return resolved
}
