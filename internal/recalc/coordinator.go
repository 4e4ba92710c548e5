// Package recalc implements the recalculation fan-out: when a weight profile
// changes, every registered consumer recomputes its scores concurrently, and
// the triggering operation blocks until all of them have settled.
package recalc

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

// Event is the payload broadcast to subscribers when a weight profile
// changes. It is ephemeral and never persisted.
type Event struct {
	UserID      string
	ProfileName string
	Profile     scoring.WeightProfile
}

// Subscriber is one recalculation consumer. Recalculate is invoked
// concurrently with other subscribers and must not share mutable state with
// them.
type Subscriber interface {
	Name() string
	Recalculate(ctx context.Context, ev Event) error
}

// Outcome records how one subscriber settled.
type Outcome struct {
	Subscriber string
	Err        error
}

// Settlement aggregates the outcomes of one fan-out. It is only produced
// once every subscriber has settled.
type Settlement struct {
	Outcomes []Outcome
}

// Succeeded returns the number of subscribers that completed without error.
func (s Settlement) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of subscribers that returned an error or
// panicked.
func (s Settlement) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// Coordinator holds the ordered subscriber list. Subscribers register once
// and live for the process lifetime; there is no removal.
type Coordinator struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Register appends a subscriber to the fan-out list.
func (c *Coordinator) Register(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, s)
}

// Notify invokes every registered subscriber concurrently and blocks until
// all of them have settled. A subscriber failure (error or panic) is logged
// and isolated; it never aborts sibling subscribers or the caller. Outcomes
// are reported in registration order.
func (c *Coordinator) Notify(ctx context.Context, ev Event) Settlement {
	c.mu.Lock()
	subs := make([]Subscriber, len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	outcomes := make([]Outcome, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub Subscriber) {
			defer wg.Done()
			outcomes[i] = Outcome{Subscriber: sub.Name(), Err: invoke(ctx, sub, ev)}
			if outcomes[i].Err != nil {
				log.Printf("recalc: subscriber %s failed: %v", sub.Name(), outcomes[i].Err)
			}
		}(i, sub)
	}
	wg.Wait()

	return Settlement{Outcomes: outcomes}
}

// invoke runs one subscriber, converting a panic into an error so a broken
// consumer cannot take down the fan-out.
func invoke(ctx context.Context, sub Subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return sub.Recalculate(ctx, ev)
}
