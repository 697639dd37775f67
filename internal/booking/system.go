package booking

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shekhakhaled/adventureland-tickets/internal/model"
	"github.com/shekhakhaled/adventureland-tickets/internal/queue"
	"github.com/shekhakhaled/adventureland-tickets/internal/repository"
	"github.com/shekhakhaled/adventureland-tickets/internal/utils"
)

// SalePublisher receives a notification for every committed purchase.
type SalePublisher interface {
	PublishTicketSold(ctx context.Context, ev queue.TicketSoldEvent) error
}

// Options configures a System. Every field is optional.
type Options struct {
	Store        repository.Store // nil keeps the ledger in memory only
	StoreTimeout time.Duration    // deadline for each write-through; zero means none
	Publisher    SalePublisher    // nil disables sale notifications
	PublishLimit time.Duration    // deadline for each sale notification; defaults to 5s
	NewReceipt   func() string    // receipt code generator; defaults to utils.NewReceiptCode
	Now          func() time.Time // clock for event timestamps; defaults to time.Now
}

// PurchaseResult describes a committed purchase.
type PurchaseResult struct {
	Username   string
	TicketType string
	Quantity   int
	TotalPrice decimal.Decimal
	Receipt    string
	Payment    string
}

// CustomerHistory pairs a username with that customer's purchases.
type CustomerHistory struct {
	Username  string
	Purchases []model.PurchaseRecord
}

// System is the ledger's aggregate root. It owns the catalog, the customer
// directory and the admin account, and runs every operation under a single
// mutex so no caller can observe a half-applied purchase. When a store is
// configured each mutation is written through before it is reported as
// successful; a failed write rolls the mutation back.
type System struct {
	mu         sync.Mutex
	catalog    *Catalog
	directory  *Directory
	admin      model.AdminAccount
	store      repository.Store
	timeout    time.Duration
	publisher  SalePublisher
	pubLimit   time.Duration
	newReceipt func() string
	now        func() time.Time
	log        *logrus.Entry
}

const defaultPublishLimit = 5 * time.Second

// New returns an empty System with the default admin account.
func New(opts Options) *System {
	s := &System{
		catalog:    NewCatalog(),
		directory:  NewDirectory(),
		admin:      model.NewAdminAccount(),
		store:      opts.Store,
		timeout:    opts.StoreTimeout,
		publisher:  opts.Publisher,
		pubLimit:   opts.PublishLimit,
		newReceipt: opts.NewReceipt,
		now:        opts.Now,
		log:        logrus.WithField("component", "booking"),
	}
	if s.newReceipt == nil {
		s.newReceipt = utils.NewReceiptCode
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.pubLimit <= 0 {
		s.pubLimit = defaultPublishLimit
	}
	return s
}

// Load replaces the in-memory state with what the store holds. Absent blobs
// load as an empty catalog or directory; an absent admin blob keeps the
// current admin account. On error, including repository.ErrPersistenceCorrupt,
// the in-memory state is left as it was.
func (s *System) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}
	s.catalog = NewCatalog(snap.Tickets...)
	s.directory = NewDirectory(snap.Customers...)
	if snap.Admin != nil {
		s.admin = snap.Admin.Clone()
	}
	s.log.WithFields(logrus.Fields{
		"tickets":   s.catalog.Len(),
		"customers": s.directory.Len(),
		"admin":     snap.Admin != nil,
	}).Info("ledger loaded")
	return nil
}

// Save writes the full state to the store.
func (s *System) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// AddTicket validates def and appends it to the catalog.
func (s *System) AddTicket(ctx context.Context, def model.TicketDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.catalog.Len()
	s.catalog.Add(def)
	if err := s.persist(ctx); err != nil {
		s.catalog.truncate(n)
		s.compensate(ctx)
		return fmt.Errorf("saving ticket %q: %w", def.TypeName, err)
	}
	s.log.WithField("ticket_type", def.TypeName).Info("ticket added")
	return nil
}

// SeedDefaults fills an empty catalog with DefaultTickets. It reports
// whether anything was added; a non-empty catalog is left alone.
func (s *System) SeedDefaults(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog.Len() > 0 {
		return false, nil
	}
	for _, def := range DefaultTickets() {
		s.catalog.Add(def)
	}
	if err := s.persist(ctx); err != nil {
		s.catalog.truncate(0)
		s.compensate(ctx)
		return false, fmt.Errorf("saving default tickets: %w", err)
	}
	s.log.WithField("tickets", s.catalog.Len()).Info("default tickets added")
	return true, nil
}

// Register adds a customer. It returns ErrMissingDetails for a blank
// username or email and ErrAlreadyExists when the username is taken; in
// both cases nothing changes and nothing is written.
func (s *System) Register(ctx context.Context, username, email string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		return ErrMissingDetails
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.directory.Register(username, email); err != nil {
		s.log.WithField("username", username).Info("registration rejected: user exists")
		return err
	}
	if err := s.persist(ctx); err != nil {
		s.directory.unregister(username)
		s.compensate(ctx)
		s.log.WithError(err).WithField("username", username).Warn("registration rolled back")
		return fmt.Errorf("saving registration: %w", err)
	}
	s.log.WithField("username", username).Info("user registered")
	return nil
}

// Purchase sells quantity tickets of ticketType to username, recording
// paymentMethod as given. The checks run in order (user, ticket type,
// quantity) and the first failure is returned before anything is mutated.
// A quantity that would overflow the type's sales counter is rejected as
// ErrInvalidQuantity. On success the record is appended to the customer's
// history and the sale recorded against the admin ledger as one step; if
// the write-through then fails both are undone. The sale notification goes
// out after the ledger lock is released.
func (s *System) Purchase(ctx context.Context, username, ticketType string, quantity int, paymentMethod string) (PurchaseResult, error) {
	rec, err := s.purchase(ctx, username, ticketType, quantity, paymentMethod)
	if err != nil {
		return PurchaseResult{}, err
	}
	s.notify(ctx, username, rec)
	return PurchaseResult{
		Username:   username,
		TicketType: rec.TicketType,
		Quantity:   rec.Quantity,
		TotalPrice: rec.TotalPrice,
		Receipt:    rec.Receipt,
		Payment:    rec.PaymentMethod,
	}, nil
}

func (s *System) purchase(ctx context.Context, username, ticketType string, quantity int, paymentMethod string) (model.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.directory.FindByUsername(username)
	if !ok {
		return model.PurchaseRecord{}, fmt.Errorf("%w: %q", ErrUserNotRegistered, username)
	}
	ticket, ok := s.catalog.FindByType(ticketType)
	if !ok {
		return model.PurchaseRecord{}, fmt.Errorf("%w: %q", ErrTicketTypeNotFound, ticketType)
	}
	total, err := ticket.Price(quantity)
	if err != nil {
		return model.PurchaseRecord{}, err
	}
	if !s.admin.Sales.CanRecord(ticket.TypeName, quantity) {
		return model.PurchaseRecord{}, fmt.Errorf("%w: %d more %q tickets overflow the sales counter",
			model.ErrInvalidQuantity, quantity, ticket.TypeName)
	}

	rec := model.PurchaseRecord{
		TicketType:    ticket.TypeName,
		Quantity:      quantity,
		TotalPrice:    total,
		Receipt:       s.newReceipt(),
		PaymentMethod: paymentMethod,
	}
	customer.AddPurchase(rec)
	s.admin.RecordSale(ticket.TypeName, quantity)

	log := s.log.WithFields(logrus.Fields{
		"username":    username,
		"ticket_type": ticket.TypeName,
		"quantity":    quantity,
		"total":       total.String(),
		"payment":     paymentMethod,
	})
	if err := s.persist(ctx); err != nil {
		customer.RevertPurchase()
		s.admin.Sales.RevertSale(ticket.TypeName, quantity)
		s.compensate(ctx)
		log.WithError(err).Warn("purchase rolled back")
		return model.PurchaseRecord{}, fmt.Errorf("saving purchase: %w", err)
	}
	log.WithField("receipt", rec.Receipt).Info("purchase recorded")
	return rec, nil
}

// FindReceipt returns the purchase carrying receipt code and the username
// of the customer who made it.
func (s *System) FindReceipt(code string) (string, model.PurchaseRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.directory.All() {
		for _, p := range c.History {
			if p.Receipt == code {
				return c.Username, p, true
			}
		}
	}
	return "", model.PurchaseRecord{}, false
}

// ListTicketTypes returns the catalog's type names in insertion order.
func (s *System) ListTicketTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Types()
}

// Tickets returns a copy of every catalog entry.
func (s *System) Tickets() []model.TicketDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.All()
}

// Customer returns a copy of the customer registered as username.
func (s *System) Customer(username string) (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.directory.FindByUsername(username)
	if !ok {
		return model.Customer{}, false
	}
	return c.Clone(), true
}

// CustomerCount reports how many customers are registered.
func (s *System) CustomerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory.Len()
}

// AllHistories returns every customer's purchases in registration order.
func (s *System) AllHistories() []CustomerHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CustomerHistory, 0, s.directory.Len())
	for _, c := range s.directory.All() {
		out = append(out, CustomerHistory{Username: c.Username, Purchases: c.PurchaseHistory()})
	}
	return out
}

// SalesReport yields (ticket type, cumulative quantity) pairs in the order
// ticket types were first sold. The pairs come from a copy taken at call
// time, so ranging over the result never races with later purchases.
func (s *System) SalesReport() iter.Seq2[string, int] {
	s.mu.Lock()
	ledger := s.admin.Sales.Clone()
	s.mu.Unlock()
	return ledger.Report()
}

// Admin returns a copy of the admin account.
func (s *System) Admin() model.AdminAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin.Clone()
}

func (s *System) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// persist writes the current state through; callers hold s.mu.
func (s *System) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	admin := s.admin.Clone()
	return s.store.Save(ctx, repository.Snapshot{
		Tickets:   s.catalog.All(),
		Customers: s.directory.Snapshot(),
		Admin:     &admin,
	})
}

// compensate rewrites the rolled-back state after a failed write-through.
// Blobs saved before the failing one would otherwise keep the undone
// change; callers hold s.mu.
func (s *System) compensate(ctx context.Context) {
	if err := s.persist(ctx); err != nil {
		s.log.WithError(err).Error("store may still hold a rolled-back change")
	}
}

// notify publishes the sale within the publish limit; failures are logged
// and otherwise ignored since the purchase is already committed. Callers
// must not hold s.mu.
func (s *System) notify(ctx context.Context, username string, rec model.PurchaseRecord) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.pubLimit)
	defer cancel()

	ev := queue.TicketSoldEvent{
		EventID:       uuid.NewString(),
		Username:      username,
		TicketType:    rec.TicketType,
		Quantity:      rec.Quantity,
		TotalPrice:    rec.TotalPrice,
		Receipt:       rec.Receipt,
		PaymentMethod: rec.PaymentMethod,
		SoldAt:        s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishTicketSold(ctx, ev); err != nil {
		s.log.WithError(err).WithField("event_id", ev.EventID).Warn("ticket sold event not published")
	}
}
