package service

import (
	"context"
	"strings"
	"sync"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/sangkips/boumia-pos/pkg/printer"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	mu        sync.Mutex
	products  []entity.Product
	customers []entity.Customer
	barcodes  map[string]int64
	err       error
	calls     []string
	// hold keeps a product lookup for the term in flight until its channel
	// is closed.
	hold map[string]chan struct{}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: []entity.Product{
			{ID: 1, Code: "TEA", Name: "Mint tea", Price: decimal.NewFromInt(10), PriceEditable: true},
			{ID: 2, Code: "SUG", Name: "Sugar", Price: decimal.RequireFromString("7.5")},
		},
		customers: []entity.Customer{
			{ID: 5, Code: "C-5", Name: "Hassan", PhoneNumber: "0600000000"},
		},
		barcodes: map[string]int64{"6111": 2},
	}
}

func (f *fakeCatalog) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeCatalog) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeCatalog) SearchProducts(_ context.Context, term string) ([]entity.Product, error) {
	if err := f.record("products:" + term); err != nil {
		return nil, err
	}
	if ch, ok := f.hold[term]; ok {
		<-ch
	}
	var out []entity.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	if err := f.record("product"); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	id, ok := f.barcodes[barcode]
	if !ok {
		return nil, f.record("barcode")
	}
	return f.GetProduct(ctx, id)
}

func (f *fakeCatalog) SearchCustomers(_ context.Context, term string) ([]entity.Customer, error) {
	if err := f.record("customers:" + term); err != nil {
		return nil, err
	}
	var out []entity.Customer
	for _, c := range f.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetCustomer(_ context.Context, id int64) (*entity.Customer, error) {
	if err := f.record("customer"); err != nil {
		return nil, err
	}
	for _, c := range f.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

type fakeOrders struct {
	mu        sync.Mutex
	submitted []entity.OrderSubmission
	orders    []entity.PersistedOrder
	createErr error
	listErr   error
	// entered is closed once Create is called; Create then waits on release.
	entered chan struct{}
	release chan struct{}
	nextID  int64
}

func (f *fakeOrders) Create(ctx context.Context, sub entity.OrderSubmission) (*entity.PersistedOrder, error) {
	if f.entered != nil {
		close(f.entered)
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, sub)
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	total := decimal.Zero
	for _, it := range sub.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	order := entity.PersistedOrder{
		ID:     100 + f.nextID,
		Number: "POS-" + decimal.NewFromInt(100+f.nextID).String(),
		Status: sub.Status,
		Total:  total,
	}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeOrders) List(context.Context) ([]entity.PersistedOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.PersistedOrder, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

type fakePrinter struct {
	mu         sync.Mutex
	state      printer.State
	connectErr error
	printErr   error
	printed    [][]byte
	connects   int
}

func (p *fakePrinter) Connect(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connects++
	if p.state == printer.StateUnsupported {
		return printer.ErrUnsupported
	}
	if p.connectErr != nil {
		return p.connectErr
	}
	p.state = printer.StateConnected
	return nil
}

func (p *fakePrinter) Print(_ context.Context, data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.state == printer.StateUnsupported:
		return 0, printer.ErrUnsupported
	case p.state != printer.StateConnected:
		return 0, printer.ErrNotConnected
	case p.printErr != nil:
		p.state = printer.StateDisconnected
		return 0, p.printErr
	}
	p.printed = append(p.printed, data)
	return len(data), nil
}

func (p *fakePrinter) Probe(ctx context.Context) bool {
	return p.Connect(ctx) == nil
}

func (p *fakePrinter) Status() printer.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return printer.Status{State: p.state, Supported: p.state != printer.StateUnsupported, Transport: "fake"}
}

func (p *fakePrinter) Close() error { return nil }

type fakeAuth struct {
	password string
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (string, *entity.Cashier, error) {
	if password != f.password {
		return "", nil, apperror.ErrInvalidCredentials
	}
	return "backend-token", &entity.Cashier{ID: 3, Username: username, FirstName: "Amina", LastName: "B"}, nil
}
