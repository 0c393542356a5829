package model

import "fmt"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	// StatusRefunded is terminal and set by the payment side; no
	// transition in this engine leads into it.
	StatusRefunded OrderStatus = "refunded"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// Actor identifies who is requesting a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorSystem   Actor = "system"
)

// transitionRule is one allowed edge of the status graph.
type transitionRule struct {
	actors           []Actor
	requiresTracking bool
}

// transitions is the complete transition table. Anything absent here
// is rejected.
var transitions = map[OrderStatus]map[OrderStatus]transitionRule{
	StatusPending: {
		StatusProcessing: {actors: []Actor{ActorSystem}},
		StatusCancelled:  {actors: []Actor{ActorCustomer}},
	},
	StatusProcessing: {
		StatusShipped:   {actors: []Actor{ActorAdmin}, requiresTracking: true},
		StatusCancelled: {actors: []Actor{ActorAdmin}},
	},
	StatusShipped: {
		StatusDelivered: {actors: []Actor{ActorAdmin, ActorSystem}},
	},
}

// ValidateTransition checks the edge, the actor, and the
// tracking-number requirement. hasTracking covers both an existing
// tracking number on the order and one supplied with the request.
func ValidateTransition(from, to OrderStatus, actor Actor, hasTracking bool) error {
	rule, ok := transitions[from][to]
	if !ok {
		return &TransitionError{From: from, To: to, Reason: "invalid transition"}
	}

	allowed := false
	for _, a := range rule.actors {
		if a == actor {
			allowed = true
			break
		}
	}
	if !allowed {
		return &TransitionError{From: from, To: to, Reason: fmt.Sprintf("actor %s is not permitted", actor)}
	}

	if rule.requiresTracking && !hasTracking {
		return &TransitionError{From: from, To: to, Reason: "tracking number is required"}
	}

	return nil
}

// TransitionError names the attempted edge so the message always shows
// the from/to pair.
type TransitionError struct {
	From   OrderStatus
	To     OrderStatus
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %s to %s", e.Reason, e.From, e.To)
}
