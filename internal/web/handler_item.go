package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/tasklist/internal/domain"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	items, err := s.service.ListItems(r.Context(), search)
	if err != nil {
		s.serverError(w, r, "list items failed", err)
		return
	}

	s.renderPage(w, r, http.StatusOK,
		pageData{Items: items, Search: search},
		"base.html", "pages/index.html",
	)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	content := strings.TrimSpace(r.FormValue("content"))

	s.flash.Add(w, r, s.service.AddItem(r.Context(), content))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	s.renderPage(w, r, http.StatusOK,
		pageData{Item: item},
		"base.html", "pages/update.html",
	)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	notice, applied := s.service.UpdateItem(r.Context(), item, content)
	s.flash.Add(w, r, notice)

	if !applied {
		http.Redirect(w, r, fmt.Sprintf("/update/%d", item.ID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	s.flash.Add(w, r, s.service.DeleteItem(r.Context(), item))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// lookupItem resolves the {id} path segment. When it returns false a 404 or
// 500 response has already been written.
func (s *Server) lookupItem(w http.ResponseWriter, r *http.Request) (*domain.Item, bool) {
	id, err := parseID(r)
	if err != nil {
		s.notFound(w, r)
		return nil, false
	}

	item, err := s.service.GetItem(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get item failed", err)
		return nil, false
	}
	if item == nil {
		s.notFound(w, r)
		return nil, false
	}
	return item, true
}

// parseID extracts the {id} path variable, which must be a positive integer.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %d", id)
	}
	return id, nil
}
