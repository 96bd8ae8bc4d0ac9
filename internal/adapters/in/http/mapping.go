package http

import (
	"encoding/json"

	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/model/parcel"
	"orderledger/internal/generated/servers"
)

func orderResponse(o *order.Order) servers.Order {
	prices := o.Prices()

	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.OrderItem{
			Product: item.ProductID().Bytes(),
			Name:    item.Name(),
			Qty:     item.Qty(),
			Price:   item.Price().StringFixed(2),
			Image:   item.Image(),
		})
	}

	response := servers.Order{
		Id:              o.ID().Bytes(),
		OrderItems:      items,
		ShippingAddress: addressResponse(o.ShippingAddress()),
		PaymentMethod:   o.PaymentMethod(),
		ItemsPrice:      prices.Items().StringFixed(2),
		ShippingPrice:   prices.Shipping().StringFixed(2),
		TaxPrice:        prices.Tax().StringFixed(2),
		TotalPrice:      prices.Total().StringFixed(2),
		IsPaid:          o.IsPaid(),
		PaidAt:          o.PaidAt(),
		IsDelivered:     o.IsDelivered(),
		DeliveredAt:     o.DeliveredAt(),
		ParcelId:        o.ParcelID(),
		Status:          statusResponse(o.Status()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if pr := o.PaymentResult(); pr != nil {
		response.PaymentResult = &servers.PaymentResult{
			Id:                pr.GatewayPaymentID,
			Status:            pr.Status,
			UpdateTime:        pr.UpdateTime,
			EmailAddress:      optional(pr.EmailAddress),
			RazorpayOrderId:   optional(pr.GatewayOrderID),
			RazorpayPaymentId: optional(pr.GatewayPaymentID),
			RazorpaySignature: optional(pr.GatewaySignature),
		}
	}

	return response
}

func statusResponse(s order.Status) servers.OrderStatus {
	switch s {
	case order.StatusPaid:
		return servers.Paid
	case order.StatusDelivered:
		return servers.Delivered
	default:
		return servers.Created
	}
}

func addressResponse(a order.Address) servers.Address {
	return servers.Address{
		Address:    a.Street(),
		City:       a.City(),
		District:   optional(a.District()),
		State:      optional(a.State()),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}

func addressFromRequest(a servers.Address) (order.Address, error) {
	return order.NewAddress(a.Address, a.City, deref(a.District), deref(a.State), a.PostalCode, a.Country)
}

// parcelResponse renders the tracking document as it was received, unknown members
// included. A nil parcel renders as JSON null.
func parcelResponse(p *parcel.Parcel) (*json.RawMessage, error) {
	if p == nil {
		return nil, nil
	}
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	raw := json.RawMessage(data)
	return &raw, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
