package rest

import (
	"net/http"

	"github.com/dmitrijs2005/edustream/internal/server/services"
)

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	list, err := h.courses.List(r.Context())
	if err != nil {
		writeInternal(w, "Failed to load courses")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCourseRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.courses.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
