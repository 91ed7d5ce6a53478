package models

// Article is the locale-independent root of a piece of content. Everything a
// reader sees lives on its translations; the article itself only carries the
// slug, the cover image path and the activation flag.
type Article struct {
	ArticleID  string  `gorm:"primarykey;column:article_id" json:"articleId"`
	Slug       string  `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	CoverImage *string `gorm:"column:cover_image" json:"coverImage"`
	IsActive   bool    `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel

	// Relationships
	Translations []ArticleTranslation `gorm:"foreignKey:ArticleID;references:ArticleID" json:"translations,omitempty"`
	Images       []ArticleImage       `gorm:"foreignKey:ArticleID;references:ArticleID" json:"images,omitempty"`
}

// TableName sets the table name for GORM
func (Article) TableName() string {
	return "articles"
}

// ArticleTranslation holds one locale's rendering of an article. At most one
// row exists per (article_id, locale) pair; the composite unique index closes
// the upsert race the application-level check alone would leave open.
type ArticleTranslation struct {
	TranslationID string `gorm:"primarykey;column:translation_id" json:"translationId"`
	ArticleID     string `gorm:"column:article_id;not null;uniqueIndex:idx_article_locale" json:"articleId"`
	Locale        string `gorm:"column:locale;not null;uniqueIndex:idx_article_locale" json:"locale"`
	Title         string `gorm:"column:title" json:"title"`
	Content       string `gorm:"column:content;type:text" json:"content"`
	Description   string `gorm:"column:description;type:text" json:"description"`
	Category      string `gorm:"column:category" json:"category"`
	BaseModel
}

// TableName sets the table name for GORM
func (ArticleTranslation) TableName() string {
	return "article_translations"
}

// ArticleImage is one captioned entry of an article's gallery. Gallery order
// is insertion order; images are addressed individually by their IMG- slug.
type ArticleImage struct {
	ImageID   string  `gorm:"primarykey;column:image_id" json:"imageId"`
	Slug      string  `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	ArticleID string  `gorm:"column:article_id;not null;index" json:"articleId"`
	Path      string  `gorm:"column:path;not null" json:"path"`
	Caption   *string `gorm:"column:caption" json:"caption"`
	BaseModel
}

// TableName sets the table name for GORM
func (ArticleImage) TableName() string {
	return "article_images"
}
