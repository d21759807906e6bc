package handlers

import (
	"context"
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/api/render"
	"github.com/aqtareen/Taqreeb/internal/domain/vendors"
)

type VendorService interface {
	List(ctx context.Context) ([]vendors.Vendor, error)
	Get(ctx context.Context, id int64) (vendors.Vendor, error)
	Create(ctx context.Context, in vendors.Input) (vendors.Vendor, error)
	Delete(ctx context.Context, id int64) error
	ListItems(ctx context.Context, vendorID int64) ([]vendors.Item, error)
	AddItem(ctx context.Context, vendorID int64, in vendors.ItemInput) (vendors.Item, error)
	RemoveItem(ctx context.Context, vendorID, itemID int64) error
}

type VendorsHandler struct {
	Service VendorService
}

func NewVendorsHandler(service VendorService) *VendorsHandler {
	return &VendorsHandler{Service: service}
}

type vendorJSON struct {
	ID   int64  `json:"Vendor_Id"`
	Name string `json:"Vendor_Name"`
}

type itemJSON struct {
	ID   int64  `json:"Item_Id"`
	Name string `json:"Item_Name"`
}

func (h *VendorsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, err, failure{message: "Error fetching vendors"})
		return
	}

	out := make([]vendorJSON, 0, len(items))
	for _, v := range items {
		out = append(out, vendorJSON{ID: v.ID, Name: v.Name})
	}
	render.JSON(w, r, http.StatusOK, out)
}

func (h *VendorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}

	vendor, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, failure{notFound: vendors.ErrNotFound, notFoundMsg: "Vendor not found", message: "Error fetching vendor"})
		return
	}
	render.JSON(w, r, http.StatusOK, vendorJSON{ID: vendor.ID, Name: vendor.Name})
}

func (h *VendorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vendorJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.Service.Create(r.Context(), vendors.Input{Name: req.Name})
	if err != nil {
		respondError(w, r, err, failure{message: "Error creating vendor"})
		return
	}
	render.JSON(w, r, http.StatusCreated, vendorJSON{ID: vendor.ID, Name: vendor.Name})
}

func (h *VendorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, failure{notFound: vendors.ErrNotFound, notFoundMsg: "Vendor not found", message: "Error deleting vendor"})
		return
	}
	render.NoContent(w)
}

func (h *VendorsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}

	items, err := h.Service.ListItems(r.Context(), vendorID)
	if err != nil {
		respondError(w, r, err, failure{message: "Error fetching vendor items"})
		return
	}

	out := make([]itemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSON{ID: item.ID, Name: item.Name})
	}
	render.JSON(w, r, http.StatusOK, out)
}

func (h *VendorsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}
	var req itemJSON
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.Service.AddItem(r.Context(), vendorID, vendors.ItemInput{Name: req.Name})
	if err != nil {
		respondError(w, r, err, failure{notFound: vendors.ErrNotFound, notFoundMsg: "Vendor not found", message: "Error adding vendor item"})
		return
	}
	render.JSON(w, r, http.StatusCreated, itemJSON{ID: item.ID, Name: item.Name})
}

func (h *VendorsHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.Service.RemoveItem(r.Context(), vendorID, itemID); err != nil {
		respondError(w, r, err, failure{notFound: vendors.ErrItemNotFound, notFoundMsg: "Vendor item not found", message: "Error removing vendor item"})
		return
	}
	render.NoContent(w)
}
