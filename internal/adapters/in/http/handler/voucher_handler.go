// internal/adapters/in/http/handler/voucher_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/adapters/in/http/middleware"
)

// VoucherHandler serves /vouchers and the lifecycle sub-routes
// (buy/redeem/transfer), all authenticated.
type VoucherHandler struct {
	createUC   *usecase.VoucherUsecase
	buyUC      *usecase.BuyUsecase
	redeemUC   *usecase.RedeemUsecase
	transferUC *usecase.TransferUsecase
}

func NewVoucherHandler(createUC *usecase.VoucherUsecase, buyUC *usecase.BuyUsecase, redeemUC *usecase.RedeemUsecase, transferUC *usecase.TransferUsecase) http.Handler {
	return &VoucherHandler{
		createUC:   createUC,
		buyUC:      buyUC,
		redeemUC:   redeemUC,
		transferUC: transferUC,
	}
}

func (h *VoucherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	if r.Method != http.MethodPost {
		writeNotFound(w)
		return
	}

	switch {
	// POST /vouchers
	case path == "/vouchers":
		h.create(w, r)

	// POST /vouchers/{id}/buy
	case strings.HasSuffix(path, "/buy"):
		h.buy(w, r, voucherIDFromPath(path, "/buy"))

	// POST /vouchers/{id}/redeem
	case strings.HasSuffix(path, "/redeem"):
		h.redeem(w, r, voucherIDFromPath(path, "/redeem"))

	// POST /vouchers/{id}/transfer
	case strings.HasSuffix(path, "/transfer"):
		h.transfer(w, r, voucherIDFromPath(path, "/transfer"))

	default:
		writeNotFound(w)
	}
}

func voucherIDFromPath(path, action string) string {
	p := strings.TrimSuffix(path, action)
	return strings.TrimPrefix(p, "/vouchers/")
}

type createVoucherBody struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ExpireAt    string  `json:"expireAt"`
	ShopID      string  `json:"shopId"`
}

func (h *VoucherHandler) create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.CurrentUID(r)

	var body createVoucherBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadBody(w)
		return
	}

	created, err := h.createUC.Create(r.Context(), uid, usecase.CreateVoucherInput{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Currency:    body.Currency,
		ExpireAt:    body.ExpireAt,
		ShopID:      body.ShopID,
	})
	if err != nil {
		writeErr(w, "voucher_handler", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"voucherId": created.ID,
	})
}

type buyBody struct {
	Quantity        int64  `json:"quantity"`
	PaymentMethodID string `json:"paymentMethodId"`
	PaymentIntentID string `json:"paymentIntentId"`
	Currency        string `json:"currency"`
}

func (h *VoucherHandler) buy(w http.ResponseWriter, r *http.Request, voucherID string) {
	uid, _ := middleware.CurrentUID(r)

	var body buyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadBody(w)
		return
	}

	res, err := h.buyUC.Buy(r.Context(), uid, usecase.BuyInput{
		VoucherID:       voucherID,
		Quantity:        body.Quantity,
		PaymentMethodID: body.PaymentMethodID,
		PaymentIntentID: body.PaymentIntentID,
		Currency:        body.Currency,
	})
	if err != nil {
		writeErr(w, "voucher_handler", err)
		return
	}

	out := map[string]any{"success": true}
	if res.RequiresAction {
		out["requiresAction"] = true
		out["paymentIntentClientSecret"] = res.PaymentIntentClientSecret
	}
	if res.CheckoutSessionID != "" {
		out["sessionId"] = res.CheckoutSessionID
		out["url"] = res.CheckoutURL
	}
	writeJSON(w, http.StatusOK, out)
}

type voucherIDBody struct {
	VoucherID string `json:"voucherId"`
}

func (h *VoucherHandler) redeem(w http.ResponseWriter, r *http.Request, voucherID string) {
	uid, _ := middleware.CurrentUID(r)

	// voucherId may also arrive in the body (callable-style clients).
	if strings.TrimSpace(voucherID) == "" {
		var body voucherIDBody
		_ = json.NewDecoder(r.Body).Decode(&body)
		voucherID = body.VoucherID
	}

	if err := h.redeemUC.Redeem(r.Context(), uid, voucherID); err != nil {
		writeErr(w, "voucher_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type transferBody struct {
	UserID string `json:"userId"`
}

func (h *VoucherHandler) transfer(w http.ResponseWriter, r *http.Request, voucherID string) {
	uid, _ := middleware.CurrentUID(r)

	var body transferBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadBody(w)
		return
	}

	if err := h.transferUC.Transfer(r.Context(), uid, body.UserID, voucherID); err != nil {
		writeErr(w, "voucher_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
