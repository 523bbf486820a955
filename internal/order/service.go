package order

import (
	"context"
	"log"
	"time"

	"github.com/productshopwm/shop-backend/internal/cart"
	"github.com/productshopwm/shop-backend/internal/pickup"
	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

// ReceiptNotifier delivers the order receipt after a successful
// checkout. Delivery is best effort and never fails the checkout.
type ReceiptNotifier interface {
	SendOrderReceipt(ctx context.Context, email string, ord Order) error
}

// Options carries the fulfillment policies that are deliberately
// configurable rather than hard-coded.
type Options struct {
	// RestockOnCancel returns a cancelled order's quantities to
	// product stock. Off by default: a cancelled order keeps its
	// reservation until staff restock explicitly.
	RestockOnCancel bool
}

type Service struct {
	repo     Repository
	users    user.ServiceInterface
	products product.ServiceInterface
	pickups  pickup.ServiceInterface
	carts    cart.ServiceInterface
	notifier ReceiptNotifier
	opts     Options
}

func NewService(repo Repository, users user.ServiceInterface, products product.ServiceInterface,
	pickups pickup.ServiceInterface, carts cart.ServiceInterface, notifier ReceiptNotifier, opts Options) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		products: products,
		pickups:  pickups,
		carts:    carts,
		notifier: notifier,
		opts:     opts,
	}
}

// Checkout converts the user's cart into a pending order. The order
// row, its items, and the stock decrements commit atomically; the cart
// clear and the receipt email happen after the commit and cannot undo
// it.
func (s *Service) Checkout(ctx context.Context, userID, pickupPointID int) (Order, error) {
	if userID <= 0 || !s.users.Exists(userID) {
		return Order{}, user.ErrNotFound
	}
	if _, err := s.pickups.GetByID(pickupPointID); err != nil {
		return Order{}, err
	}

	listing, err := s.carts.ListForCheckout(userID)
	if err != nil {
		return Order{}, err
	}
	if len(listing.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	lines := make([]CheckoutLine, 0, len(listing.Items))
	for _, item := range listing.Items {
		lines = append(lines, CheckoutLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	ord, err := s.repo.CreateFromCart(ctx, userID, &pickupPointID, lines)
	if err != nil {
		return Order{}, err
	}

	if err := s.carts.Clear(userID); err != nil {
		log.Printf("order %d: clearing cart for user %d failed: %v", ord.ID, userID, err)
	}
	s.sendReceipt(ctx, userID, ord)

	return ord, nil
}

func (s *Service) Get(orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	items, err := s.repo.ListItems(orderID)
	if err != nil {
		return Order{}, err
	}
	ord.Items = items
	s.enrich(&ord)
	return ord, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 || !s.users.Exists(userID) {
		return nil, user.ErrNotFound
	}
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(orders)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

func (s *Service) ListByStatus(status string) ([]Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByStatus(status)
}

// ConfirmPickup marks the order as handed to the customer. Confirming
// an already-issued order reports the original issuance timestamp and
// changes nothing.
func (s *Service) ConfirmPickup(ctx context.Context, orderID int) (Confirmation, error) {
	return s.repo.ConfirmPickup(ctx, orderID, time.Now())
}

// Cancel transitions a pending order to cancelled. Issued orders cannot
// be cancelled. Whether stock is restored follows Options.RestockOnCancel.
func (s *Service) Cancel(ctx context.Context, orderID int) error {
	return s.repo.Cancel(ctx, orderID, s.opts.RestockOnCancel)
}

func (s *Service) AddItem(ctx context.Context, orderID, productID, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, cart.ErrInvalidQuantity
	}
	if !s.products.Exists(productID) {
		return Item{}, product.ErrNotFound
	}
	return s.repo.AddItem(ctx, orderID, productID, quantity)
}

func (s *Service) SetItemQuantity(ctx context.Context, itemID, quantity int) error {
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}
	return s.repo.SetItemQuantity(ctx, itemID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, itemID int) error {
	return s.repo.RemoveItem(ctx, itemID)
}

func (s *Service) attachItems(orders []Order) ([]Order, error) {
	for i := range orders {
		items, err := s.repo.ListItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
		s.enrich(&orders[i])
	}
	return orders, nil
}

// enrich fills the read-side projections: product names on items and
// the resolved pickup point. Lookup failures leave the plain ids in
// place rather than failing the read.
func (s *Service) enrich(ord *Order) {
	if len(ord.Items) > 0 {
		ids := make([]int, 0, len(ord.Items))
		for _, item := range ord.Items {
			ids = append(ids, item.ProductID)
		}
		if products, err := s.products.ListByIDs(ids); err == nil {
			names := make(map[int]string, len(products))
			for _, p := range products {
				names[p.ID] = p.Name
			}
			for i := range ord.Items {
				ord.Items[i].ProductName = names[ord.Items[i].ProductID]
			}
		}
	}
	if ord.PickupPointID != nil {
		if p, err := s.pickups.GetByID(*ord.PickupPointID); err == nil {
			ord.PickupPoint = &p
		}
	}
}

func (s *Service) sendReceipt(ctx context.Context, userID int, ord Order) {
	if s.notifier == nil {
		return
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		log.Printf("order %d: receipt skipped, user lookup failed: %v", ord.ID, err)
		return
	}
	if err := s.notifier.SendOrderReceipt(ctx, u.Email, ord); err != nil {
		log.Printf("order %d: receipt delivery failed: %v", ord.ID, err)
	}
}
