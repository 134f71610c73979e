// Package session tracks the ordering flow for one session as an explicit
// state machine: restaurants -> menu -> cart -> checkout -> confirmation.
// Transitions are pure functions of (state, event).
package session

import (
	"errors"
	"fmt"

	domain "github.com/luckyeats/food-order-api/internal/entity"
)

type View string

const (
	ViewRestaurants  View = "restaurants"
	ViewMenu         View = "menu"
	ViewCart         View = "cart"
	ViewCheckout     View = "checkout"
	ViewConfirmation View = "confirmation"
)

type State struct {
	View           View                   `json:"view"`
	RestaurantName string                 `json:"restaurantName,omitempty"`
	ConfirmedOrder *domain.ConfirmedOrder `json:"confirmedOrder,omitempty"`
}

// Initial is the state of a fresh session.
func Initial() State {
	return State{View: ViewRestaurants}
}

type EventKind string

const (
	// EventBrowse returns to the restaurant list (header logo in the UI).
	EventBrowse EventKind = "browse"
	// EventSelectRestaurant opens one restaurant's menu.
	EventSelectRestaurant EventKind = "select_restaurant"
	// EventOpenCart shows the cart; reachable from any screen (header button).
	EventOpenCart EventKind = "open_cart"
	// EventBack leaves the cart or checkout for the previous screen.
	EventBack EventKind = "back"
	// EventBeginCheckout moves from cart to the checkout form.
	EventBeginCheckout EventKind = "begin_checkout"
	// EventNewOrder discards the confirmed order and starts over.
	EventNewOrder EventKind = "new_order"
)

type Event struct {
	Kind           EventKind `json:"event"`
	RestaurantName string    `json:"restaurantName,omitempty"`
}

var ErrInvalidTransition = errors.New("invalid view transition")

// Transition applies a user event to a state. It never mutates its inputs.
func Transition(s State, e Event) (State, error) {
	switch e.Kind {
	case EventBrowse:
		if s.View == ViewConfirmation {
			return s, transitionErr(s, e)
		}
		return State{View: ViewRestaurants}, nil

	case EventSelectRestaurant:
		if s.View != ViewRestaurants || e.RestaurantName == "" {
			return s, transitionErr(s, e)
		}
		return State{View: ViewMenu, RestaurantName: e.RestaurantName}, nil

	case EventOpenCart:
		if s.View == ViewConfirmation {
			return s, transitionErr(s, e)
		}
		next := s
		next.View = ViewCart
		return next, nil

	case EventBack:
		switch s.View {
		case ViewCart:
			if s.RestaurantName != "" {
				next := s
				next.View = ViewMenu
				return next, nil
			}
			return State{View: ViewRestaurants}, nil
		case ViewCheckout:
			next := s
			next.View = ViewCart
			return next, nil
		case ViewMenu:
			return State{View: ViewRestaurants}, nil
		}
		return s, transitionErr(s, e)

	case EventBeginCheckout:
		if s.View != ViewCart {
			return s, transitionErr(s, e)
		}
		next := s
		next.View = ViewCheckout
		return next, nil

	case EventNewOrder:
		if s.View != ViewConfirmation {
			return s, transitionErr(s, e)
		}
		return Initial(), nil
	}
	return s, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, e.Kind)
}

// Confirmed is the state adopted when checkout commits. It is driven by the
// orchestrator, not by a user event, so it bypasses Transition.
func Confirmed(order domain.ConfirmedOrder) State {
	return State{View: ViewConfirmation, ConfirmedOrder: &order}
}

func transitionErr(s State, e Event) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, e.Kind, s.View)
}
