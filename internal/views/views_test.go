package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_InvalidateFansOut(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(func(view string) {
		got = append(got, view)
	})

	bus.Invalidate(Leads, Dashboard)

	assert.Equal(t, []string{Leads, Dashboard}, got)
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	first, second := 0, 0
	bus.Subscribe(func(string) { first++ })
	bus.Subscribe(func(string) { second++ })

	bus.Invalidate(Quotes)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestBus_NilBusIsNoOp(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Invalidate(Settings)
	})
}

func TestBus_NoSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus().Invalidate(Leads)
	})
}
