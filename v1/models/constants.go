package models

// SourceLocale is the language articles are submitted in
const SourceLocale = "fr"

// SupportedLocales is the fixed set of locales every article is stored in
var SupportedLocales = []string{"fr", "en", "es", "zh"}

// UntranslatedMarker is appended to a field when the translation provider
// fails, and returned verbatim when no translation row exists for a locale
const UntranslatedMarker = "[non traduit]"

// Article categories accepted on create/update
var ArticleCategories = []string{
	"education",
	"santé",
	"formation",
	"humanitaire",
	"developpement_communautaire",
	"actions_sociales",
	"insertion",
	"autre",
}

// Status filter values for list endpoints
const (
	StatusActivated    = "activated"
	StatusDesactivated = "desactivated"
	StatusAll          = "all"
)

// Member/donation type discriminators
const (
	TypeIndividual = "individual"
	TypeCompany    = "company"
)

// Blob store namespaces
const (
	NamespaceCovers  = "covers"
	NamespaceGallery = "article_gallery"
)

// MaxRejectionReasonLength bounds the moderation rejection reason
const MaxRejectionReasonLength = 500

// IsSupportedLocale reports whether locale belongs to the fixed set
func IsSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// IsValidCategory reports whether category belongs to the accepted set
func IsValidCategory(category string) bool {
	for _, c := range ArticleCategories {
		if c == category {
			return true
		}
	}
	return false
}
