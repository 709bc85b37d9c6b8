package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()

	var first, second []AuthChange
	bus.SubscribeAuthChange(func(ev AuthChange) { first = append(first, ev) })
	bus.SubscribeAuthChange(func(ev AuthChange) { second = append(second, ev) })

	bus.PublishAuthChange(AuthChange{Username: "alice", Role: "customer", LoggedIn: true})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, "alice", first[0].Username)
	assert.True(t, second[0].LoggedIn)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var got []AuthChange
	unsub := bus.SubscribeAuthChange(func(ev AuthChange) { got = append(got, ev) })

	bus.PublishAuthChange(AuthChange{Username: "alice", LoggedIn: true})
	unsub()
	bus.PublishAuthChange(AuthChange{LoggedIn: false})

	assert.Len(t, got, 1)
}

func TestBusSubscriberCanUnsubscribeItself(t *testing.T) {
	bus := NewBus()

	calls := 0
	var unsub func()
	unsub = bus.SubscribeAuthChange(func(AuthChange) {
		calls++
		unsub()
	})

	assert.NotPanics(t, func() {
		bus.PublishAuthChange(AuthChange{})
		bus.PublishAuthChange(AuthChange{})
	})
	assert.Equal(t, 1, calls)
}

func TestBusNoSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus().PublishAuthChange(AuthChange{LoggedIn: false})
	})
}
