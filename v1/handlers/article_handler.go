package handlers

import (
	"net/http"
	"strings"

	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/ong-espoir/api-server-go/v1/services"
)

// handleArticles handles article-related routes
func (h *V1Handler) handleArticles(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/articles")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Collection endpoint: GET /api/v1/articles and POST /api/v1/articles
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listArticles(w, r)
		case http.MethodPost:
			h.createArticle(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Gallery image endpoint: /api/v1/articles/images/:slug
	if len(parts) == 2 && parts[0] == "images" {
		imageSlug := parts[1]
		switch r.Method {
		case http.MethodPut:
			h.replaceArticleImage(w, r, imageSlug)
		case http.MethodDelete:
			h.deleteArticleImage(w, r, imageSlug)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) != 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	// Single article: GET by slug, PUT/DELETE by id
	switch r.Method {
	case http.MethodGet:
		h.getArticleBySlug(w, r, parts[0])
	case http.MethodPut:
		h.updateArticle(w, r, parts[0])
	case http.MethodDelete:
		h.deactivateArticle(w, r, parts[0])
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *V1Handler) createArticle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps multipart invalide")
		return
	}
	form := r.MultipartForm
	defer form.RemoveAll()

	input := services.CreateArticleInput{
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	if covers := form.File["cover_image"]; len(covers) > 0 {
		cover, err := covers[0].Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Image de couverture illisible")
			return
		}
		defer cover.Close()
		input.Cover = &services.ImageUpload{File: cover, Filename: covers[0].Filename}
	}

	uploads, opened, err := openUploads(formFiles(form, "gallery"), formValues(form, "captions"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Images de galerie illisibles")
		return
	}
	defer closeFiles(opened)
	input.Gallery = uploads

	article, err := h.articleService.CreateArticle(r.Context(), input)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, "Article créé avec succès", article)
}

func (h *V1Handler) updateArticle(w http.ResponseWriter, r *http.Request, articleID string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps multipart invalide")
		return
	}
	form := r.MultipartForm
	defer form.RemoveAll()

	input := services.UpdateArticleInput{
		Title:       formValue(form, "title"),
		Content:     formValue(form, "content"),
		Description: formValue(form, "description"),
		Category:    formValue(form, "category"),
	}

	if covers := form.File["cover_image"]; len(covers) > 0 {
		cover, err := covers[0].Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Image de couverture illisible")
			return
		}
		defer cover.Close()
		input.Cover = &services.ImageUpload{File: cover, Filename: covers[0].Filename}
	}

	uploads, opened, err := openUploads(formFiles(form, "gallery"), formValues(form, "captions"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Images de galerie illisibles")
		return
	}
	defer closeFiles(opened)
	input.Gallery = uploads

	article, err := h.articleService.UpdateArticle(r.Context(), articleID, input)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Article mis à jour avec succès", article)
}

func (h *V1Handler) listArticles(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	params := services.ListArticlesParams{
		Page:     page,
		PerPage:  perPage,
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Locale:   negotiateLocale(r),
	}

	views, pagination, err := h.articleService.ListArticles(params)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Articles récupérés avec succès",
		models.CollectionResponse{Items: views, Pagination: pagination})
}

func (h *V1Handler) getArticleBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	view, err := h.articleService.GetArticleBySlug(slug, r.URL.Query().Get("status"), negotiateLocale(r))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Article récupéré avec succès", view)
}

func (h *V1Handler) deactivateArticle(w http.ResponseWriter, r *http.Request, articleID string) {
	if err := h.articleService.DeactivateArticle(articleID); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Article désactivé avec succès", nil)
}

func (h *V1Handler) replaceArticleImage(w http.ResponseWriter, r *http.Request, imageSlug string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps multipart invalide")
		return
	}
	form := r.MultipartForm
	defer form.RemoveAll()

	files := form.File["image"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "L'image de remplacement est requise")
		return
	}
	file, err := files[0].Open()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image illisible")
		return
	}
	defer file.Close()

	upload := services.ImageUpload{
		File:     file,
		Filename: files[0].Filename,
		Caption:  formValue(form, "caption"),
	}

	image, err := h.galleryService.ReplaceImage(imageSlug, upload)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Image remplacée avec succès", h.articleService.ImageView(image))
}

func (h *V1Handler) deleteArticleImage(w http.ResponseWriter, r *http.Request, imageSlug string) {
	if err := h.galleryService.DeleteImage(imageSlug); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Image supprimée avec succès", nil)
}
