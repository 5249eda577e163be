package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/internal/domain/enum"
	"github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/apperror"
	"github.com/shopcart/pos-api/pkg/pagination"
)

// fakeCustomerRepo is an in-memory CustomerRepository keyed by mobile.
type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	c, ok := r.customers[mobile]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Upsert(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	existing, ok := r.customers[customer.Mobile]
	if !ok {
		c := *customer
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.Mobile] = &c
		cp := c
		return &cp, nil
	}

	existing.Name = customer.Name
	existing.DOB = customer.DOB
	if customer.Email != nil && *customer.Email != "" {
		existing.Email = customer.Email
	}
	cp := *existing
	return &cp, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	out := make([]entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) SearchNamePrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) SearchMobilePrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	return nil, nil
}

// fakeInvoiceRepo is an in-memory InvoiceRepository. Create applies the
// point accrual against the customer repo the way the database
// transaction does.
type fakeInvoiceRepo struct {
	customers *fakeCustomerRepo
	invoices  []*entity.Invoice
	nextID    uint
}

func newFakeInvoiceRepo(customers *fakeCustomerRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{customers: customers, nextID: 1}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice, accrual *repository.PointAccrual) error {
	invoice.ID = r.nextID
	r.nextID++
	invoice.CreatedAt = time.Now()

	cp := *invoice
	r.invoices = append(r.invoices, &cp)

	if accrual != nil && accrual.Points > 0 {
		if c, ok := r.customers.customers[accrual.Mobile]; ok {
			c.Points += accrual.Points
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) ListByMobile(ctx context.Context, mobile string, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.CustomerMobile == mobile {
			out = append(out, *inv)
		}
	}
	// Newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) SalesReport(ctx context.Context, from, to time.Time) (*repository.SalesReport, error) {
	return &repository.SalesReport{}, nil
}

func newTestBillingService() (*BillingService, *fakeCustomerRepo, *fakeInvoiceRepo) {
	customers := newFakeCustomerRepo()
	invoices := newFakeInvoiceRepo(customers)
	sessions := NewSessionManager(time.Hour)
	return NewBillingService(sessions, customers, invoices, "₹"), customers, invoices
}

func seedCustomer(repo *fakeCustomerRepo, name, mobile string, points int) {
	repo.customers[mobile] = &entity.Customer{
		ID:     uuid.New(),
		Name:   name,
		Mobile: mobile,
		Points: points,
	}
}

func addItems(t *testing.T, svc *BillingService, id uuid.UUID) {
	t.Helper()
	_, err := svc.AddItem(id, &AddItemInput{Name: "Milk", Quantity: 2, UnitPrice: 50.0})
	require.NoError(t, err)
	_, err = svc.AddItem(id, &AddItemInput{Name: "Bread", Quantity: 1, UnitPrice: 40.0})
	require.NoError(t, err)
}

func TestCheckoutWithSilverCustomer(t *testing.T) {
	svc, customers, invoices := newTestBillingService()
	seedCustomer(customers, "John Doe", "9876543210", 600)

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
		Name:   "John Doe",
		Mobile: "9876543210",
	})
	require.NoError(t, err)

	preview, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14000), preview.SubTotal)
	assert.Equal(t, int64(1400), preview.Discount)
	assert.Equal(t, int64(12600), preview.Total)
	assert.Equal(t, enum.TierSilver, preview.Tier)
	assert.Contains(t, preview.Text, "Reward Tier: Silver")
	assert.Contains(t, preview.Text, "Final Amount: ₹126.00")

	invoice, err := svc.Checkout(context.Background(), state.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), invoice.ID)
	assert.Equal(t, int64(14000), invoice.SubTotal)
	assert.Equal(t, int64(1400), invoice.Discount)
	assert.Equal(t, int64(12600), invoice.Total)
	assert.Equal(t, "John Doe", invoice.CustomerName)
	assert.Equal(t, "9876543210", invoice.CustomerMobile)
	require.NotNil(t, invoice.CustomerID)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "Milk", invoice.Items[0].Name)
	assert.Equal(t, int64(10000), invoice.Items[0].Total)
	assert.Equal(t, "Bread", invoice.Items[1].Name)
	assert.Equal(t, int64(4000), invoice.Items[1].Total)

	// 126.00 final earns floor(126/100)*10 = 10 points.
	assert.Equal(t, 610, customers.customers["9876543210"].Points)
	require.Len(t, invoices.invoices, 1)

	// The saved invoice is retrievable by the customer's mobile with
	// the same items and total the preview showed.
	found, _, err := invoices.ListByMobile(context.Background(), "9876543210", pagination.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, preview.Total, found[0].Total)
}

func TestCheckoutWalkIn(t *testing.T) {
	svc, customers, _ := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	preview, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14000), preview.SubTotal)
	assert.Equal(t, int64(0), preview.Discount)
	assert.Equal(t, int64(14000), preview.Total)
	assert.Equal(t, enum.TierNone, preview.Tier)
	assert.NotContains(t, preview.Text, "Customer:")
	assert.NotContains(t, preview.Text, "Discount:")

	invoice, err := svc.Checkout(context.Background(), state.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, invoice.CustomerID)
	assert.Empty(t, invoice.CustomerName)
	assert.Empty(t, invoice.CustomerMobile)

	// No customer, no accrual.
	assert.Empty(t, customers.customers)
}

func TestCheckoutRequiresCalculatedBill(t *testing.T) {
	svc, _, _ := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.Checkout(context.Background(), state.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrUncalculatedBill)
}

func TestCheckoutRejectsStaleBill(t *testing.T) {
	svc, _, _ := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)

	// Cart changed after the bill was shown.
	_, err = svc.AddItem(state.ID, &AddItemInput{Name: "Eggs", Quantity: 6, UnitPrice: 8.0})
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), state.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrUncalculatedBill)

	// Recalculating clears the staleness.
	_, err = svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), state.ID, nil)
	assert.NoError(t, err)
}

func TestAttachCustomerInvalidatesQuote(t *testing.T) {
	svc, customers, _ := newTestBillingService()
	seedCustomer(customers, "John Doe", "9876543210", 600)

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)

	// Attaching a customer changes the discount, so the old quote
	// cannot be saved.
	_, err = svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
		Name:   "John Doe",
		Mobile: "9876543210",
	})
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), state.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrUncalculatedBill)
}

func TestCalculateBillIsRepeatable(t *testing.T) {
	svc, _, _ := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	first, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	second, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)

	_, err = svc.Checkout(context.Background(), state.ID, nil)
	assert.NoError(t, err)
}

func TestCalculateBillEmptyCart(t *testing.T) {
	svc, _, _ := newTestBillingService()

	state := svc.OpenSession()

	_, err := svc.CalculateBill(context.Background(), state.ID)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	_, err = svc.Checkout(context.Background(), state.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestCheckoutResetsSession(t *testing.T) {
	svc, _, _ := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), state.ID, nil)
	require.NoError(t, err)

	after, err := svc.GetSession(state.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Items)
	assert.Nil(t, after.Customer)
	assert.Nil(t, after.Bill)
}

func TestAddItemValidation(t *testing.T) {
	svc, _, _ := newTestBillingService()
	state := svc.OpenSession()

	tests := []struct {
		name  string
		input AddItemInput
	}{
		{"empty name", AddItemInput{Name: "  ", Quantity: 1, UnitPrice: 10}},
		{"zero quantity", AddItemInput{Name: "Milk", Quantity: 0, UnitPrice: 10}},
		{"negative quantity", AddItemInput{Name: "Milk", Quantity: -2, UnitPrice: 10}},
		{"zero price", AddItemInput{Name: "Milk", Quantity: 1, UnitPrice: 0}},
		{"negative price", AddItemInput{Name: "Milk", Quantity: 1, UnitPrice: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(state.ID, &tt.input)
			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			assert.Equal(t, 422, appErr.Code)
		})
	}

	// Nothing invalid landed in the cart.
	got, err := svc.GetSession(state.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestAttachCustomerValidation(t *testing.T) {
	svc, customers, _ := newTestBillingService()
	state := svc.OpenSession()

	_, err := svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
		Name:   "Jo",
		Mobile: "12345",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)

	// Invalid identity never reaches the store.
	assert.Empty(t, customers.customers)
}

func TestAttachCustomerNeverTouchesPoints(t *testing.T) {
	svc, customers, _ := newTestBillingService()
	seedCustomer(customers, "Old Name", "9876543210", 600)

	state := svc.OpenSession()

	_, err := svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
		Name:   "New Name",
		Mobile: "9876543210",
	})
	require.NoError(t, err)

	c := customers.customers["9876543210"]
	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, 600, c.Points)
}

func TestDetachCustomerRevertsToWalkIn(t *testing.T) {
	svc, customers, _ := newTestBillingService()
	seedCustomer(customers, "John Doe", "9876543210", 600)

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
		Name:   "John Doe",
		Mobile: "9876543210",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DetachCustomer(state.ID))

	preview, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), preview.Discount)
	assert.Equal(t, enum.TierNone, preview.Tier)
}

func TestClearCartInvalidatesQuote(t *testing.T) {
	svc, _, _ := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(state.ID))

	_, err = svc.Checkout(context.Background(), state.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestInvoiceItemsFrozenAtCheckout(t *testing.T) {
	svc, _, invoices := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), state.ID, nil)
	require.NoError(t, err)

	// The next transaction's cart cannot affect the saved invoice.
	_, err = svc.AddItem(state.ID, &AddItemInput{Name: "Eggs", Quantity: 6, UnitPrice: 8.0})
	require.NoError(t, err)

	saved, err := invoices.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, saved.Items, 2)
}

func TestSequentialInvoiceIDs(t *testing.T) {
	svc, _, _ := newTestBillingService()

	for want := uint(1); want <= 3; want++ {
		state := svc.OpenSession()
		addItems(t, svc, state.ID)
		_, err := svc.CalculateBill(context.Background(), state.ID)
		require.NoError(t, err)
		invoice, err := svc.Checkout(context.Background(), state.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, want, invoice.ID)
	}
}

// failingInvoiceRepo rejects every save.
type failingInvoiceRepo struct {
	fakeInvoiceRepo
}

func (r *failingInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice, accrual *repository.PointAccrual) error {
	return apperror.NewPersistenceError("Failed to save invoice", nil)
}

func TestCheckoutFailureLeavesStateUntouched(t *testing.T) {
	customers := newFakeCustomerRepo()
	seedCustomer(customers, "John Doe", "9876543210", 600)
	sessions := NewSessionManager(time.Hour)
	svc := NewBillingService(sessions, customers, &failingInvoiceRepo{}, "₹")

	state := svc.OpenSession()
	addItems(t, svc, state.ID)

	_, err := svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
		Name:   "John Doe",
		Mobile: "9876543210",
	})
	require.NoError(t, err)
	_, err = svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), state.ID, nil)
	require.Error(t, err)

	// Points untouched, session still holds the cart and the quote, so
	// a retry can proceed without re-entering anything.
	assert.Equal(t, 600, customers.customers["9876543210"].Points)
	after, err := svc.GetSession(state.ID)
	require.NoError(t, err)
	assert.Len(t, after.Items, 2)
	require.NotNil(t, after.Bill)
	assert.Equal(t, 126.0, float64(after.Bill.Total)/100)
}

func TestBronzeAndGoldDiscounts(t *testing.T) {
	tests := []struct {
		name         string
		points       int
		wantDiscount int64
		wantTier     enum.RewardTier
	}{
		{"bronze", 100, 700, enum.TierBronze},
		{"silver", 500, 1400, enum.TierSilver},
		{"gold", 1000, 2100, enum.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, customers, _ := newTestBillingService()
			seedCustomer(customers, "John Doe", "9876543210", tt.points)

			state := svc.OpenSession()
			addItems(t, svc, state.ID)

			_, err := svc.AttachCustomer(context.Background(), state.ID, &CustomerIdentity{
				Name:   "John Doe",
				Mobile: "9876543210",
			})
			require.NoError(t, err)

			preview, err := svc.CalculateBill(context.Background(), state.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, preview.Discount)
			assert.Equal(t, tt.wantTier, preview.Tier)
		})
	}
}

func TestCheckoutStampsCashier(t *testing.T) {
	svc, _, invoices := newTestBillingService()

	state := svc.OpenSession()
	addItems(t, svc, state.ID)
	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)

	cashier := &Cashier{ID: uuid.New(), Username: "master"}
	invoice, err := svc.Checkout(context.Background(), state.ID, cashier)
	require.NoError(t, err)
	require.NotNil(t, invoice.EmployeeID)
	assert.Equal(t, cashier.ID, *invoice.EmployeeID)
	assert.Equal(t, "master", invoice.Cashier)

	saved, err := invoices.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.EmployeeID)
	assert.Equal(t, "master", saved.Cashier)
}

// hookedInvoiceRepo runs a callback just before the save lands, so
// tests can interleave session mutations with the write.
type hookedInvoiceRepo struct {
	*fakeInvoiceRepo
	beforeSave func()
}

func (r *hookedInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice, accrual *repository.PointAccrual) error {
	if r.beforeSave != nil {
		r.beforeSave()
	}
	return r.fakeInvoiceRepo.Create(ctx, invoice, accrual)
}

func TestCheckoutKeepsItemsAddedDuringSave(t *testing.T) {
	customers := newFakeCustomerRepo()
	sessions := NewSessionManager(time.Hour)
	repo := &hookedInvoiceRepo{fakeInvoiceRepo: newFakeInvoiceRepo(customers)}
	svc := NewBillingService(sessions, customers, repo, "₹")

	state := svc.OpenSession()
	addItems(t, svc, state.ID)
	_, err := svc.CalculateBill(context.Background(), state.ID)
	require.NoError(t, err)

	// The cashier keys in another item while the save is in flight.
	repo.beforeSave = func() {
		_, addErr := svc.AddItem(state.ID, &AddItemInput{Name: "Eggs", Quantity: 6, UnitPrice: 8})
		require.NoError(t, addErr)
	}

	invoice, err := svc.Checkout(context.Background(), state.ID, nil)
	require.NoError(t, err)
	require.Len(t, invoice.Items, 2)

	// The racing item is not discarded with the saved cart: it starts
	// the next transaction.
	after, err := svc.GetSession(state.ID)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.Equal(t, "Eggs", after.Items[0].Name)
	assert.Nil(t, after.Bill)
}
