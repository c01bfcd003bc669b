package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

// OperatorPayload identifies the acting operator on every mutating request.
// The engine trusts the identity; authentication happens upstream.
type OperatorPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// CreateOrderRequest is the order-intake payload.
type CreateOrderRequest struct {
	CustomerRef         string                   `json:"customerRef"`
	ShippingAddress     string                   `json:"shippingAddress"`
	SupplierRef         string                   `json:"supplierRef"`
	SpecialInstructions string                   `json:"specialInstructions,omitempty"`
	Operator            OperatorPayload          `json:"operator"`
	Items               []CreateOrderItemPayload `json:"items"`
}

// CreateOrderItemPayload is one requested line item.
type CreateOrderItemPayload struct {
	SKU            string `json:"sku"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	IsFragile      bool   `json:"isFragile,omitempty"`
}

// ScanPickRequest is a barcode scan from the picking floor.
type ScanPickRequest struct {
	SKU      string          `json:"sku"`
	Operator OperatorPayload `json:"operator"`
}

// ConfirmPackRequest confirms an item went into shipping material.
type ConfirmPackRequest struct {
	MaterialID string          `json:"materialId"`
	Operator   OperatorPayload `json:"operator"`
}

// ConfirmShipRequest confirms an item was handed to a carrier.
type ConfirmShipRequest struct {
	Carrier        string          `json:"carrier"`
	TrackingNumber string          `json:"trackingNumber"`
	Operator       OperatorPayload `json:"operator"`
}

// ErrorResponse carries a stable machine-readable code plus a human message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OrderResponse is the order snapshot returned by every successful call.
type OrderResponse struct {
	ID                  string              `json:"id"`
	CustomerRef         string              `json:"customerRef"`
	ShippingAddress     string              `json:"shippingAddress"`
	SupplierRef         string              `json:"supplierRef"`
	SpecialInstructions string              `json:"specialInstructions,omitempty"`
	Carrier             string              `json:"carrier,omitempty"`
	TrackingNumber      string              `json:"trackingNumber,omitempty"`
	Status              string              `json:"status"`
	CreatedAt           time.Time           `json:"createdAt"`
	Items               []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one line item of the snapshot.
type OrderItemResponse struct {
	ID                string `json:"id"`
	SKU               string `json:"sku"`
	RequestedQuantity int    `json:"requestedQuantity"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	IsFragile         bool   `json:"isFragile,omitempty"`
	Status            string `json:"status"`
	PickedQuantity    int    `json:"pickedQuantity"`
	PackedQuantity    int    `json:"packedQuantity"`
	PackingMaterialID string `json:"packingMaterialId,omitempty"`
	ShortageFlagged   bool   `json:"shortageFlagged,omitempty"`
}

// HistoryEntryResponse is one audit entry, oldest entries first.
type HistoryEntryResponse struct {
	ID           string    `json:"id"`
	Seq          int64     `json:"seq"`
	Action       string    `json:"action"`
	OperatorID   string    `json:"operatorId"`
	OperatorName string    `json:"operatorName"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// orderResponseFromAggregate maps a freshly mutated aggregate to the snapshot
// shape, used by command endpoints that return the post-commit state.
func orderResponseFromAggregate(aggregate *order.Order) OrderResponse {
	domainItems := aggregate.Items()
	items := make([]OrderItemResponse, 0, len(domainItems))
	for _, item := range domainItems {
		items = append(items, OrderItemResponse{
			ID:                item.ID().String(),
			SKU:               item.SKU(),
			RequestedQuantity: item.RequestedQuantity(),
			UnitPriceCents:    item.UnitPrice(),
			IsFragile:         item.IsFragile(),
			Status:            item.Status().String(),
			PickedQuantity:    item.PickedQuantity(),
			PackedQuantity:    item.PackedQuantity(),
			PackingMaterialID: item.PackingMaterialID(),
			ShortageFlagged:   item.ShortageFlagged(),
		})
	}

	return OrderResponse{
		ID:                  aggregate.ID().String(),
		CustomerRef:         aggregate.CustomerRef(),
		ShippingAddress:     aggregate.ShippingAddress(),
		SupplierRef:         aggregate.SupplierRef(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Carrier:             aggregate.Carrier(),
		TrackingNumber:      aggregate.TrackingNumber(),
		Status:              aggregate.Status().String(),
		CreatedAt:           aggregate.CreatedAt(),
		Items:               items,
	}
}

// orderResponseFromQuery maps the read model to the same snapshot shape, so
// GET and the mutating endpoints return identical structures.
func orderResponseFromQuery(snapshot queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, OrderItemResponse{
			ID:                item.ID.String(),
			SKU:               item.SKU,
			RequestedQuantity: item.RequestedQuantity,
			UnitPriceCents:    item.UnitPriceCents,
			IsFragile:         item.IsFragile,
			Status:            item.Status,
			PickedQuantity:    item.PickedQuantity,
			PackedQuantity:    item.PackedQuantity,
			PackingMaterialID: item.PackingMaterialID,
			ShortageFlagged:   item.ShortageFlagged,
		})
	}

	return OrderResponse{
		ID:                  snapshot.ID.String(),
		CustomerRef:         snapshot.CustomerRef,
		ShippingAddress:     snapshot.ShippingAddress,
		SupplierRef:         snapshot.SupplierRef,
		SpecialInstructions: snapshot.SpecialInstructions,
		Carrier:             snapshot.Carrier,
		TrackingNumber:      snapshot.TrackingNumber,
		Status:              snapshot.Status,
		CreatedAt:           snapshot.CreatedAt,
		Items:               items,
	}
}

func historyResponseFromQuery(entries []queries.GetHistoryQueryResponse) []HistoryEntryResponse {
	response := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, HistoryEntryResponse{
			ID:           entry.ID.String(),
			Seq:          entry.Seq,
			Action:       entry.Action,
			OperatorID:   entry.OperatorID.String(),
			OperatorName: entry.OperatorName,
			RecordedAt:   entry.RecordedAt,
		})
	}
	return response
}
