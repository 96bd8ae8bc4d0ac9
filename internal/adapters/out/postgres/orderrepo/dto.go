// Package orderrepo maps order aggregates to the orders and order_items tables.
package orderrepo

import (
	"time"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Line items live in order_items.
type OrderDTO struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Items           []OrderItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress AddressDTO       `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string           `gorm:"not null"`
	ItemsPrice      decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	ShippingPrice   decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TaxPrice        decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TotalPrice      decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	IsPaid          bool             `gorm:"not null;default:false;index"`
	PaidAt          *time.Time       `gorm:"index"`
	PaymentResult   PaymentResultDTO `gorm:"embedded;embeddedPrefix:payment_"`
	IsDelivered     bool             `gorm:"not null;default:false"`
	DeliveredAt     *time.Time
	ParcelID        *string   `gorm:"index"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line item. Position keeps the order in which items were submitted.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	Qty       int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Image     string
}

// TableName overrides GORM's default "order_item_dtos".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// AddressDTO is embedded into orders with the shipping_ prefix, so Street is stored as
// shipping_address.
type AddressDTO struct {
	Street     string `gorm:"column:address"`
	City       string
	District   string
	State      string
	PostalCode string
	Country    string
}

// PaymentResultDTO is embedded into orders with the payment_ prefix. All columns are
// empty strings while the order is unpaid.
type PaymentResultDTO struct {
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Status           string
	UpdateTime       string
	EmailAddress     string
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Qty:       item.Qty(),
			Price:     item.Price(),
			Image:     item.Image(),
		})
	}

	addr := o.ShippingAddress()
	prices := o.Prices()

	dto := OrderDTO{
		ID:    id,
		Items: items,
		ShippingAddress: AddressDTO{
			Street:     addr.Street(),
			City:       addr.City(),
			District:   addr.District(),
			State:      addr.State(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
		},
		PaymentMethod: o.PaymentMethod(),
		ItemsPrice:    prices.Items(),
		ShippingPrice: prices.Shipping(),
		TaxPrice:      prices.Tax(),
		TotalPrice:    prices.Total(),
		IsPaid:        o.IsPaid(),
		PaidAt:        o.PaidAt(),
		IsDelivered:   o.IsDelivered(),
		DeliveredAt:   o.DeliveredAt(),
		ParcelID:      o.ParcelID(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	if pr := o.PaymentResult(); pr != nil {
		dto.PaymentResult = PaymentResultDTO(*pr)
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.Name, itemDTO.Qty, itemDTO.Price, itemDTO.Image)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	addr, err := order.NewAddress(
		dto.ShippingAddress.Street,
		dto.ShippingAddress.City,
		dto.ShippingAddress.District,
		dto.ShippingAddress.State,
		dto.ShippingAddress.PostalCode,
		dto.ShippingAddress.Country,
	)
	if err != nil {
		return nil, err
	}

	prices, err := order.NewPrices(dto.ItemsPrice, dto.ShippingPrice, dto.TaxPrice, dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	var result *order.PaymentResult
	if dto.IsPaid {
		pr := order.PaymentResult(dto.PaymentResult)
		result = &pr
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   dto.PaymentMethod,
		Prices:          prices,
		IsPaid:          dto.IsPaid,
		PaidAt:          dto.PaidAt,
		PaymentResult:   result,
		IsDelivered:     dto.IsDelivered,
		DeliveredAt:     dto.DeliveredAt,
		ParcelID:        dto.ParcelID,
		Version:         dto.Version,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}
