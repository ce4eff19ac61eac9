// Package catalog owns the product collection: the ordered list of products,
// the transient form state, and the mirror of the list in key-value storage.
package catalog

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/talkincode/productcards/internal/domain"
	"github.com/talkincode/productcards/internal/kvstore"
	"go.uber.org/zap"
)

// StorageKey is the fixed key holding the serialized collection
const StorageKey = "products"

// Topics published on the event bus after a successful mutation.
// Handlers receive the affected domain.Product.
const (
	TopicCreated = "product:created"
	TopicUpdated = "product:updated"
	TopicDeleted = "product:deleted"
)

// UIState is the transient form state. It is never persisted.
type UIState struct {
	Form      domain.Form
	Editing   bool
	EditingID int64
	Visible   bool
}

// Store is the single owner of the product collection. A mutation and its write
// to storage happen under one lock; prompts are issued before it is taken.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	prompt   Prompter
	bus      EventBus.Bus
	now      func() time.Time
	products []domain.Product
	ui       UIState
}

// NewStore creates an empty store; call Initialize to load the persisted collection.
// bus may be nil.
func NewStore(kv kvstore.Store, prompt Prompter, bus EventBus.Bus) *Store {
	if prompt == nil {
		prompt = NewAutoPrompter(false)
	}
	return &Store{
		kv:       kv,
		prompt:   prompt,
		bus:      bus,
		now:      time.Now,
		products: []domain.Product{},
	}
}

// Initialize replaces the collection with the persisted one. A missing,
// unreadable or unparsable value yields an empty collection.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = []domain.Product{}
	s.ui = UIState{}

	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return
	}
	if err != nil {
		zap.L().Warn("unable to read persisted products, starting empty",
			zap.String("namespace", "catalog"), zap.Error(err))
		return
	}
	products, err := DecodeProducts(data)
	if err != nil {
		zap.L().Warn("persisted products are corrupt, starting empty",
			zap.String("namespace", "catalog"), zap.Error(err))
		return
	}
	for _, problem := range loadedProblems(products) {
		zap.L().Warn("persisted product breaks an invariant, keeping it as stored",
			zap.String("namespace", "catalog"), zap.String("problem", problem))
	}
	s.products = products
	zap.L().Info("products loaded", zap.String("namespace", "catalog"), zap.Int("count", len(products)))
}

// List returns a copy of the collection in insertion order
func (s *Store) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product{}, s.products...)
}

// Get looks a product up by id
func (s *Store) Get(id int64) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.products[i], true
	}
	return domain.Product{}, false
}

// State returns a copy of the transient form state
func (s *Store) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui
}

// BeginCreate opens an empty form with no editing target
func (s *Store) BeginCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui = UIState{Visible: true}
}

// BeginEdit opens the form loaded with the product's fields
func (s *Store) BeginEdit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	s.ui = UIState{
		Form:      FormFromProduct(s.products[i]),
		Editing:   true,
		EditingID: id,
		Visible:   true,
	}
	return nil
}

// Cancel clears the buffer and editing target and hides the form
func (s *Store) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui = UIState{}
}

// SetForm replaces the whole field buffer
func (s *Store) SetForm(f domain.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.Form = f
}

// SetField updates one field of the buffer
func (s *Store) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SetFormField(&s.ui.Form, field, value)
}

// Submit validates the buffer and creates or updates a product from it.
// On a validation failure the user is alerted and nothing changes.
func (s *Store) Submit(ctx context.Context) (domain.Product, error) {
	s.mu.Lock()
	return s.submitAndUnlock(ctx)
}

// SubmitState installs st as the form state and submits it in one step. A
// client that remembers its own editing target posts it back here, so a form
// opened by another client in between cannot turn an edit into a create.
func (s *Store) SubmitState(ctx context.Context, st UIState) (domain.Product, error) {
	s.mu.Lock()
	st.Visible = true
	if !st.Editing {
		st.EditingID = 0
	}
	s.ui = st
	return s.submitAndUnlock(ctx)
}

// submitAndUnlock runs with s.mu held and releases it before prompting or publishing
func (s *Store) submitAndUnlock(ctx context.Context) (domain.Product, error) {
	fields, err := ValidateForm(s.ui.Form)
	if err != nil {
		s.mu.Unlock()
		s.prompter(ctx).Alert(ctx, err.Error())
		return domain.Product{}, err
	}

	var (
		p     domain.Product
		topic = TopicCreated
		found = true
	)
	if s.ui.Editing {
		topic = TopicUpdated
		p, found, err = s.replaceLocked(ctx, s.ui.EditingID, fields)
	} else {
		p, err = s.appendLocked(ctx, fields)
	}
	s.ui = UIState{}
	s.mu.Unlock()

	if !found {
		return domain.Product{}, err
	}
	s.publish(topic, p)
	return p, err
}

// Create validates the form and appends a new product
func (s *Store) Create(ctx context.Context, f domain.Form) (domain.Product, error) {
	fields, err := ValidateForm(f)
	if err != nil {
		s.prompter(ctx).Alert(ctx, err.Error())
		return domain.Product{}, err
	}
	s.mu.Lock()
	p, err := s.appendLocked(ctx, fields)
	s.mu.Unlock()

	s.publish(TopicCreated, p)
	return p, err
}

// Update validates the form and replaces every field of the product but its id
func (s *Store) Update(ctx context.Context, id int64, f domain.Form) (domain.Product, error) {
	fields, err := ValidateForm(f)
	if err != nil {
		s.prompter(ctx).Alert(ctx, err.Error())
		return domain.Product{}, err
	}
	s.mu.Lock()
	p, found, err := s.replaceLocked(ctx, id, fields)
	s.mu.Unlock()

	if !found {
		return domain.Product{}, err
	}
	s.publish(TopicUpdated, p)
	return p, err
}

// Delete removes the product after the user confirms. A missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if !s.prompter(ctx).Confirm(ctx, MsgConfirmDelete) {
		return ErrNotConfirmed
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	p := s.products[i]
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(TopicDeleted, p)
	return err
}

// loadedProblems lists the records a form submission could never have produced
func loadedProblems(products []domain.Product) []string {
	var problems []string
	seen := make(map[int64]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			problems = append(problems, fmt.Sprintf("duplicate id %d", p.ID))
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, fmt.Sprintf("product %d has an empty name", p.ID))
		}
		if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			problems = append(problems, fmt.Sprintf("product %d has an invalid price %v", p.ID, p.Price))
		}
	}
	return problems
}

func (s *Store) appendLocked(ctx context.Context, fields domain.Product) (domain.Product, error) {
	fields.ID = s.nextIDLocked()
	s.products = append(s.products, fields)
	return fields, s.persistLocked(ctx)
}

func (s *Store) replaceLocked(ctx context.Context, id int64, fields domain.Product) (domain.Product, bool, error) {
	i := s.indexLocked(id)
	if i < 0 {
		return domain.Product{}, false, ErrNotFound
	}
	fields.ID = id
	s.products[i] = fields
	return fields, true, s.persistLocked(ctx)
}

// nextIDLocked mints the creation timestamp in milliseconds, bumped past the
// largest existing id when the clock has not moved on.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	var maxID int64
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	if id <= maxID {
		id = maxID + 1
	}
	return id
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := EncodeProducts(s.products)
	if err == nil {
		err = s.kv.Put(ctx, StorageKey, data)
	}
	if err != nil {
		zap.L().Error("failed to persist products",
			zap.String("namespace", "catalog"),
			zap.Int("count", len(s.products)),
			zap.Error(err))
		return &PersistError{Err: err}
	}
	return nil
}

func (s *Store) prompter(ctx context.Context) Prompter {
	return prompterFrom(ctx, s.prompt)
}

func (s *Store) publish(topic string, p domain.Product) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(topic, p)
}
