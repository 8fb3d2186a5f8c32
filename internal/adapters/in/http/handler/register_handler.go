// internal/adapters/in/http/handler/register_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	usecase "voucherhub/internal/application/usecase"
)

// RegisterHandler serves POST /register (unauthenticated).
type RegisterHandler struct {
	uc *usecase.RegisterUsecase
}

func NewRegisterHandler(uc *usecase.RegisterUsecase) http.Handler {
	return &RegisterHandler{uc: uc}
}

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadBody(w)
		return
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	}); err != nil {
		writeErr(w, "register_handler", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
