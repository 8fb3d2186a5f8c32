// internal/adapters/in/http/handler/shop_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/adapters/in/http/middleware"
)

// ShopHandler serves /shops (authenticated).
type ShopHandler struct {
	uc *usecase.ShopUsecase
}

func NewShopHandler(uc *usecase.ShopUsecase) http.Handler {
	return &ShopHandler{uc: uc}
}

type createShopBody struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (h *ShopHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// POST /shops
	case r.Method == http.MethodPost && path == "/shops":
		h.create(w, r)
	default:
		writeNotFound(w)
	}
}

func (h *ShopHandler) create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.CurrentUID(r)

	var body createShopBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadBody(w)
		return
	}

	created, err := h.uc.Create(r.Context(), uid, usecase.CreateShopInput{
		Name: body.Name,
		Tags: body.Tags,
	})
	if err != nil {
		writeErr(w, "shop_handler", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"shopId":  created.ID,
	})
}
