package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	checkoutUsecase usecase.CheckoutUC
	logger          logger.Logger
}

func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUsecase: checkoutUsecase, logger: logger}
}

// checkout проводит продажу по корзине из тела запроса.
// Пустая корзина — единственная жёсткая ошибка (400); позиции без товара
// или без остатка возвращаются в ответе со статусом skipped.
func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var body checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	req, err := h.toCheckoutReq(&body)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.checkoutUsecase.Checkout(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, checkoutResponse{
		SaleID: res.Sale.ID,
		Sale:   newSaleView(res.Sale),
		Lines:  newLineResults(res.Lines),
	})
}

// receipt возвращает чек по идентификатору продажи.
func (h *CheckoutHandler) receipt(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	sale, err := h.checkoutUsecase.Receipt(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newSaleView(sale))
}

func (h *CheckoutHandler) toCheckoutReq(body *checkoutRequest) (*usecase.CheckoutReq, error) {
	lines := make([]usecase.CartLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, usecase.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Qty,
		})
	}

	var tendered *int64
	if body.Tendered != "" {
		cents, err := parseAmountToCents(body.Tendered)
		if err != nil {
			return nil, err
		}
		tendered = &cents
	}

	return usecase.NewCheckoutReq(lines, tendered), nil
}
