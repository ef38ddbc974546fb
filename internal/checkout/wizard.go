package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/cart"
	"github.com/AlejandroCopponi/esencia-retro/internal/domain/order"
	"github.com/AlejandroCopponi/esencia-retro/internal/mq"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
	"github.com/AlejandroCopponi/esencia-retro/internal/shipping"
)

// The wizard is a strictly linear state machine. There is no backward
// transition; re-submitting the contact step restarts it.
type Step string

const (
	StepContact   Step = "contact"
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepCompleted Step = "completed"
)

type State struct {
	Step     Step               `json:"step"`
	Email    string             `json:"email,omitempty"`
	Customer order.Customer     `json:"customer,omitempty"`
	Address  order.Address      `json:"address,omitempty"`
	Options  []shipping.Option  `json:"options,omitempty"`
	Selected *shipping.Option   `json:"selected,omitempty"`
}

var (
	ErrWrongStep     = errors.New("checkout: action not valid for current step")
	ErrEmptyCart     = errors.New("checkout: cart is empty")
	ErrInvalidEmail  = errors.New("checkout: invalid email")
	ErrMissingFields = errors.New("checkout: missing required fields")
	ErrUnknownOption = errors.New("checkout: unknown shipping option")
	ErrNoSelection   = errors.New("checkout: no shipping option selected")
)

// OrderStore is the backend surface the wizard writes to.
type OrderStore interface {
	CreateOrderWithItems(ctx context.Context, o order.Order, items []order.Item) (order.Order, error)
	InsertAbandoned(ctx context.Context, email string, snapshot []cart.LineItem) error
	MarkRecovered(ctx context.Context, email string) error
}

// Publisher emits domain events; best-effort, may be nil when the
// broker is not configured.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// Cart is the slice of the cart manager the wizard needs.
type Cart interface {
	Items() []cart.LineItem
	Total() float64
	Clear(ctx context.Context) error
}

type Wizard struct {
	states session.Store
	orders OrderStore
	events Publisher
}

func NewWizard(states session.Store, orders OrderStore, events Publisher) *Wizard {
	return &Wizard{states: states, orders: orders, events: events}
}

// StateOf returns the session's wizard state; a missing or corrupt
// snapshot restarts at the contact step.
func (w *Wizard) StateOf(ctx context.Context, sessionID string) State {
	raw, err := w.states.Load(ctx, sessionID)
	if err != nil || len(raw) == 0 {
		if err != nil {
			zap.L().Warn("checkout: state load failed, restarting", zap.Error(err))
		}
		return State{Step: StepContact}
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		zap.L().Warn("checkout: corrupt state, restarting", zap.Error(err))
		return State{Step: StepContact}
	}
	if st.Step == "" {
		st.Step = StepContact
	}
	return st
}

func (w *Wizard) save(ctx context.Context, sessionID string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return w.states.Save(ctx, sessionID, data)
}

// SubmitContact (re)starts the wizard. The abandoned-checkout snapshot
// is a best-effort side effect: capture failure never blocks the step.
func (w *Wizard) SubmitContact(ctx context.Context, sessionID, email string, cartItems []cart.LineItem) (State, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return w.StateOf(ctx, sessionID), ErrInvalidEmail
	}
	if len(cartItems) == 0 {
		return w.StateOf(ctx, sessionID), ErrEmptyCart
	}

	if err := w.orders.InsertAbandoned(ctx, email, cartItems); err != nil {
		zap.L().Warn("abandoned checkout capture failed", zap.String("email", email), zap.Error(err))
	} else {
		w.publish(ctx, mq.EventCheckoutAbandoned, AbandonedEvent{Email: email, Items: cartItems})
	}

	st := State{Step: StepShipping, Email: email}
	if err := w.save(ctx, sessionID, st); err != nil {
		return st, err
	}
	return st, nil
}

// SubmitShipping records the address and quotes the couriers for its
// postal code. The shopper still has to pick one option.
func (w *Wizard) SubmitShipping(ctx context.Context, sessionID string, cust order.Customer, addr order.Address) (State, error) {
	st := w.StateOf(ctx, sessionID)
	if st.Step != StepShipping {
		return st, ErrWrongStep
	}
	if cust.FirstName == "" || cust.LastName == "" || cust.Phone == "" || addr.Street == "" {
		return st, ErrMissingFields
	}

	opts, err := shipping.Quote(addr.PostalCode)
	if err != nil {
		return st, err
	}

	st.Customer = cust
	st.Address = addr
	st.Options = opts
	st.Selected = nil
	if err := w.save(ctx, sessionID, st); err != nil {
		return st, err
	}
	return st, nil
}

// SelectShipping locks in one quoted option and advances to payment.
func (w *Wizard) SelectShipping(ctx context.Context, sessionID, optionID string) (State, error) {
	st := w.StateOf(ctx, sessionID)
	if st.Step != StepShipping || len(st.Options) == 0 {
		return st, ErrWrongStep
	}
	for i := range st.Options {
		if st.Options[i].ID == optionID {
			st.Selected = &st.Options[i]
			st.Step = StepPayment
			if err := w.save(ctx, sessionID, st); err != nil {
				return st, err
			}
			return st, nil
		}
	}
	return st, ErrUnknownOption
}

// Finalize writes the order and its items as one atomic unit, marks
// the latest abandoned checkout for the email as recovered, clears the
// cart and completes the wizard. If the order write fails the wizard
// stays on the payment step and the cart is untouched.
func (w *Wizard) Finalize(ctx context.Context, sessionID string, shopperCart Cart) (order.Order, error) {
	st := w.StateOf(ctx, sessionID)
	if st.Step != StepPayment {
		return order.Order{}, ErrWrongStep
	}
	if st.Selected == nil {
		return order.Order{}, ErrNoSelection
	}
	items := shopperCart.Items()
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	subtotal := shopperCart.Total()
	o := order.Order{
		UserEmail:        st.Email,
		Subtotal:         subtotal,
		ShippingCost:     st.Selected.Price,
		Total:            subtotal + st.Selected.Price,
		ShippingProvider: st.Selected.Provider,
		ShippingAddress:  st.Address,
		Customer:         st.Customer,
		Status:           order.StatusPendingPayment,
	}
	orderItems := make([]order.Item, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, order.Item{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Size:        it.Size,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}

	created, err := w.orders.CreateOrderWithItems(ctx, o, orderItems)
	if err != nil {
		return order.Order{}, err
	}

	// Everything after the order write is best-effort.
	if err := w.orders.MarkRecovered(ctx, st.Email); err != nil {
		zap.L().Warn("mark abandoned checkout recovered failed", zap.String("email", st.Email), zap.Error(err))
	}
	if err := shopperCart.Clear(ctx); err != nil {
		zap.L().Warn("cart clear after order failed", zap.Error(err))
	}
	st.Step = StepCompleted
	st.Options = nil
	if err := w.save(ctx, sessionID, st); err != nil {
		zap.L().Warn("checkout state save after order failed", zap.Error(err))
	}
	w.publish(ctx, mq.EventOrderCreated, created)

	return created, nil
}

// AbandonedEvent is the payload of a checkout.abandoned event.
type AbandonedEvent struct {
	Email string          `json:"email"`
	Items []cart.LineItem `json:"items"`
}

func (w *Wizard) publish(ctx context.Context, event string, payload any) {
	if w.events == nil {
		return
	}
	if err := w.events.Publish(ctx, event, payload); err != nil {
		zap.L().Warn("event publish failed", zap.String("event", event), zap.Error(err))
	}
}
