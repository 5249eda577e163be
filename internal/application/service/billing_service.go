package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/internal/domain/enum"
	"github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/apperror"
	"github.com/shopcart/pos-api/pkg/billfmt"
	"github.com/shopcart/pos-api/pkg/validator"
)

// BillingService is the reward-tier billing and invoice lifecycle
// engine: it turns a cart plus an optional customer loyalty record into
// a priced, discounted, persisted invoice, and keeps the customer's
// point balance consistent across purchases.
type BillingService struct {
	sessions     *SessionManager
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	currency     string
}

// NewBillingService creates a new billing service
func NewBillingService(
	sessions *SessionManager,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	currency string,
) *BillingService {
	return &BillingService{
		sessions:     sessions,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		currency:     currency,
	}
}

// OpenSession starts a new checkout session.
func (s *BillingService) OpenSession() *SessionState {
	sess := s.sessions.Create()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state()
}

// GetSession returns the current session state.
func (s *BillingService) GetSession(id uuid.UUID) (*SessionState, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state(), nil
}

// CloseSession discards a session.
func (s *BillingService) CloseSession(id uuid.UUID) {
	s.sessions.Close(id)
}

// AddItemInput represents a line item entry.
type AddItemInput struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// AddItem validates the entry, computes the line total, and appends it
// to the session cart preserving entry order.
func (s *BillingService) AddItem(sessionID uuid.UUID, input *AddItemInput) (*entity.LineItem, error) {
	var fields []apperror.FieldError
	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "Item name cannot be empty"})
	}
	if input.Quantity <= 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "Quantity must be a positive number"})
	}
	if input.UnitPrice <= 0 {
		fields = append(fields, apperror.FieldError{Field: "unit_price", Message: "Price must be a positive number"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	item := entity.NewLineItem(name, input.Quantity, int64(math.Round(input.UnitPrice*100)))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.items = append(sess.items, item)
	sess.revision++

	return &item, nil
}

// ClearCart empties the session cart. Confirmation is a caller concern.
func (s *BillingService) ClearCart(sessionID uuid.UUID) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.items = nil
	sess.quote = nil
	sess.revision++
	return nil
}

// AttachCustomer validates and records the customer identity for the
// transaction and upserts the customer record. The point balance is
// untouched: identity capture never accrues points.
func (s *BillingService) AttachCustomer(ctx context.Context, sessionID uuid.UUID, identity *CustomerIdentity) (*entity.Customer, error) {
	if appErr := validator.Identity(identity.Name, identity.Mobile, identity.DOB, identity.Email); appErr != nil {
		return nil, appErr
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:   identity.Name,
		Mobile: identity.Mobile,
	}
	if identity.DOB != "" {
		dob := identity.DOB
		customer.DOB = &dob
	}
	if identity.Email != "" {
		email := identity.Email
		customer.Email = &email
	}

	customer, err = s.customerRepo.Upsert(ctx, customer)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.customer = identity
	sess.revision++

	return customer, nil
}

// DetachCustomer removes the attached identity, reverting the session
// to a walk-in sale.
func (s *BillingService) DetachCustomer(sessionID uuid.UUID) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.customer = nil
	sess.revision++
	return nil
}

// CalculateBill prices the current cart and returns a preview. It is
// side-effect-free with respect to persisted state and may be called
// repeatedly; the latest preview is remembered on the session as the
// precondition for Checkout.
func (s *BillingService) CalculateBill(ctx context.Context, sessionID uuid.UUID) (*entity.BillPreview, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	items := make([]entity.LineItem, len(sess.items))
	copy(items, sess.items)
	identity := sess.customer
	revision := sess.revision
	sess.mu.Unlock()

	if len(items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	preview, _, err := s.price(ctx, items, identity)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	// Only remember the quote if the cart did not change while pricing.
	if sess.revision == revision {
		sess.quote = &quote{preview: *preview, revision: revision}
	}

	return preview, nil
}

// Checkout persists the previously calculated bill as an invoice. The
// save is atomic: the invoice, its frozen item copies, and the point
// accrual land in one transaction or not at all. On success the cart,
// the attached identity, and the quote are cleared.
// Cashier identifies the signed-in operator saving the invoice.
type Cashier struct {
	ID       uuid.UUID
	Username string
}

func (s *BillingService) Checkout(ctx context.Context, sessionID uuid.UUID, cashier *Cashier) (*entity.Invoice, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	items := make([]entity.LineItem, len(sess.items))
	copy(items, sess.items)
	identity := sess.customer
	revision := sess.revision
	q := sess.quote
	sess.mu.Unlock()

	if len(items) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if q == nil || q.revision != revision {
		return nil, apperror.ErrUncalculatedBill
	}

	preview, customer, err := s.price(ctx, items, identity)
	if err != nil {
		return nil, err
	}
	// The displayed total must match what we are about to charge. A
	// drift here means the loyalty balance moved since the preview.
	if preview.Total != q.preview.Total {
		return nil, apperror.ErrUncalculatedBill
	}

	invoice := &entity.Invoice{
		SubTotal:    preview.SubTotal,
		Discount:    preview.Discount,
		Total:       preview.Total,
		BillContent: preview.Text,
		Items:       freezeItems(items),
	}
	if cashier != nil {
		invoice.EmployeeID = &cashier.ID
		invoice.Cashier = cashier.Username
	}

	var accrual *repository.PointAccrual
	if identity != nil {
		invoice.CustomerName = identity.Name
		invoice.CustomerMobile = identity.Mobile
		invoice.CustomerEmail = identity.Email
	}
	if customer != nil {
		invoice.CustomerID = &customer.ID
		if invoice.CustomerName == "" {
			invoice.CustomerName = customer.Name
		}
		if invoice.CustomerEmail == "" {
			invoice.CustomerEmail = customer.EmailOrEmpty()
		}
		if earned := enum.PointsEarned(preview.Total); earned > 0 {
			accrual = &repository.PointAccrual{Mobile: customer.Mobile, Points: earned}
		}
	}

	if err := s.invoiceRepo.Create(ctx, invoice, accrual); err != nil {
		return nil, err
	}

	// Reset the session for the next transaction. If the session was
	// mutated while the save was in flight, keep the lines that were
	// added after the snapshot: they belong to the next sale, not the
	// one just recorded.
	sess.mu.Lock()
	if n := len(items); sess.revision != revision && len(sess.items) > n {
		sess.items = append([]entity.LineItem(nil), sess.items[n:]...)
	} else {
		sess.items = nil
	}
	sess.customer = nil
	sess.quote = nil
	sess.revision++
	sess.mu.Unlock()

	return invoice, nil
}

// price computes subtotal, tier, discount, final amount, and the
// rendered bill text for a cart and an optional identity. The resolved
// customer record is returned so Checkout can accrue points.
func (s *BillingService) price(ctx context.Context, items []entity.LineItem, identity *CustomerIdentity) (*entity.BillPreview, *entity.Customer, error) {
	subtotal := entity.Subtotal(items)

	tier := enum.TierNone
	var discount int64
	var customer *entity.Customer

	if identity != nil && identity.Mobile != "" {
		var err error
		customer, err = s.customerRepo.GetByMobile(ctx, identity.Mobile)
		if err != nil {
			return nil, nil, err
		}
		if customer != nil {
			tier = customer.Tier()
			discount = int64(float64(subtotal) * tier.DiscountRate())
		}
	}

	final := subtotal - discount

	bill := billfmt.Bill{
		Items:    billItems(items),
		SubTotal: subtotal,
		Discount: discount,
		Total:    final,
		Symbol:   s.currency,
	}
	if identity != nil {
		bill.CustomerName = identity.Name
		bill.CustomerMobile = identity.Mobile
		bill.RewardTier = tier.String()
	}

	preview := &entity.BillPreview{
		SubTotal: subtotal,
		Discount: discount,
		Total:    final,
		Tier:     tier,
		Text:     billfmt.Format(bill),
	}

	return preview, customer, nil
}

func billItems(items []entity.LineItem) []billfmt.Item {
	out := make([]billfmt.Item, len(items))
	for i, it := range items {
		out[i] = billfmt.Item{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		}
	}
	return out
}

// freezeItems deep-copies cart lines into invoice items so later cart
// mutation cannot touch the saved invoice.
func freezeItems(items []entity.LineItem) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(items))
	for i, it := range items {
		out[i] = entity.InvoiceItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		}
	}
	return out
}
