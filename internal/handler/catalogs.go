package handler

import "net/http"

func (h *Handler) GetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.repository.GetAllRoles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roles retrieved", roles)
}

func (h *Handler) GetAllPredefinedShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.repository.GetAllPredefinedShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "predefined shifts retrieved", shifts)
}
