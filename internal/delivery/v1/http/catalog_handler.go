package http

import (
	"net/http"

	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// storefront отдаёт товары с положительным остатком — то, что видит касса.
func (h *CatalogHandler) storefront(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUsecase.ListAvailable(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductViews(products))
}

// adminCatalog отдаёт полный каталог, включая товары с нулевым остатком.
func (h *CatalogHandler) adminCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUsecase.ListAll(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductViews(products))
}

// addProduct создаёт товар из form-данных админки.
func (h *CatalogHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	price, stock, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.catalogUsecase.CreateProduct(
		r.Context(),
		usecase.NewCreateProductReq(name, price, stock, r.FormValue("category")),
	)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductView(product))
}

// updateProduct полностью перезаписывает поля товара.
func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r.FormValue("id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	price, stock, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.catalogUsecase.UpdateProduct(
		r.Context(),
		usecase.NewUpdateProductReq(id, r.FormValue("name"), price, stock, r.FormValue("category")),
	)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductView(product))
}

// deleteProduct удаляет товар; история продаж хранит снапшоты и не страдает.
func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r.FormValue("id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := h.catalogUsecase.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]int64{"deleted_id": id})
}

// parseProductForm разбирает денежное и количественное поля формы товара.
func parseProductForm(r *http.Request) (price, stock int64, err error) {
	price, err = parseAmountToCents(r.FormValue("price"))
	if err != nil {
		return 0, 0, err
	}

	stock, err = parseStock(r.FormValue("stock"))
	if err != nil {
		return 0, 0, err
	}

	return price, stock, nil
}
