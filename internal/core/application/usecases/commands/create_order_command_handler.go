package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderledger/internal/core/domain/model/catalog"
	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/services"
	"orderledger/internal/core/ports"
)

// ErrProductNotFound means an item references a product the catalog does not know.
// It carries no error kind, so the HTTP layer reports it as 500.
var ErrProductNotFound = errors.New("product not found")

// CreateOrderCommandHandler snapshots catalog prices into a new order and stores it.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
	calculator services.PriceCalculator
}

// NewCreateOrderCommandHandler creates a handler that prices items from productCatalog.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	productCatalog ports.ProductCatalog,
	calculator services.PriceCalculator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    productCatalog,
		calculator: calculator,
	}
}

// Handle resolves every product, computes the prices and persists the order.
// Returns ErrProductNotFound if any product is unknown; nothing is written then.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	requested := cmd.Items()
	ids := make([]kernel.UUID, 0, len(requested))
	seen := make(map[kernel.UUID]struct{}, len(requested))
	for _, item := range requested {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := h.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lineItems := make([]order.LineItem, 0, len(requested))
	for _, item := range requested {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		name, image := product.Name, product.Image
		if item.Name != "" {
			name = item.Name
		}
		if item.Image != "" {
			image = item.Image
		}
		lineItem, itemErr := order.NewLineItem(product.ID, name, item.Qty, product.Price, image)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, lineItem)
	}

	prices, err := h.calculator.Calculate(lineItems)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), lineItems, cmd.ShippingAddress(), cmd.PaymentMethod(), prices, time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
