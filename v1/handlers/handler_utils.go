package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/ong-espoir/api-server-go/v1/services"
	"golang.org/x/text/language"
)

// maxUploadSize bounds multipart request bodies (32 MiB)
const maxUploadSize = 32 << 20

var localeMatcher = language.NewMatcher([]language.Tag{
	language.French, // fr is the source locale and wins ties
	language.English,
	language.Spanish,
	language.Chinese,
})

var matcherLocales = []string{"fr", "en", "es", "zh"}

// negotiateLocale resolves the response locale: an explicit supported
// ?locale= wins, then Accept-Language negotiation, then the source locale
func negotiateLocale(r *http.Request) string {
	if locale := r.URL.Query().Get("locale"); models.IsSupportedLocale(locale) {
		return locale
	}

	header := r.Header.Get("Accept-Language")
	if header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
			_, index, confidence := localeMatcher.Match(tags...)
			if confidence > language.No {
				return matcherLocales[index]
			}
		}
	}
	return models.SourceLocale
}

// parsePageParams reads the page/per_page query parameters
func parsePageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	return page, perPage
}

// parseBoolParam reads an optional boolean query parameter
func parseBoolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// formValue returns a pointer to a multipart form field, nil when absent
func formValue(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formFiles returns the uploaded files under name, accepting both the bare
// and the PHP-style bracketed key
func formFiles(form *multipart.Form, name string) []*multipart.FileHeader {
	if files, ok := form.File[name+"[]"]; ok {
		return files
	}
	return form.File[name]
}

// formValues returns the repeated values under name, accepting both key styles
func formValues(form *multipart.Form, name string) []string {
	if values, ok := form.Value[name+"[]"]; ok {
		return values
	}
	return form.Value[name]
}

// openUploads opens the gallery file headers and pairs each with its
// positional caption. Captions beyond the file count are ignored; files
// beyond the caption count get none.
func openUploads(files []*multipart.FileHeader, captions []string) ([]services.ImageUpload, []multipart.File, error) {
	uploads := make([]services.ImageUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			closeFiles(opened)
			return nil, nil, err
		}
		opened = append(opened, file)

		upload := services.ImageUpload{File: file, Filename: header.Filename}
		if i < len(captions) && captions[i] != "" {
			caption := captions[i]
			upload.Caption = &caption
		}
		uploads = append(uploads, upload)
	}
	return uploads, opened, nil
}

func closeFiles(files []multipart.File) {
	for _, file := range files {
		file.Close()
	}
}
