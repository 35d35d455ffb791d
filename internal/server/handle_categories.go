package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CategoryInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type CategoryListResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

type QuestionInfo struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Text       string `json:"text"`
}

type QuestionListResponse struct {
	Questions []QuestionInfo `json:"questions"`
}

func handleCategoryList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := store.ListCategories(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := CategoryListResponse{Categories: []CategoryInfo{}}
		for _, c := range cats {
			resp.Categories = append(resp.Categories, CategoryInfo{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				Icon:        c.Icon,
				Color:       c.Color,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleQuestionList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "id")

		exists, err := store.CategoryExists(r.Context(), categoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}

		questions, err := store.ListQuestions(r.Context(), categoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := QuestionListResponse{Questions: []QuestionInfo{}}
		for _, q := range questions {
			resp.Questions = append(resp.Questions, QuestionInfo{
				ID:         q.ID,
				CategoryID: q.CategoryID,
				Text:       q.Text,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
