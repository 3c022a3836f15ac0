package eventbus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type certCreated struct {
	Name string
}

type certUpdated struct {
	Name string
}

func newTestBus() EventBus {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewEventPublisher(logger)
}

func TestPublish_DeliversToMatchingSubscriber(t *testing.T) {
	bus := newTestBus()

	var got []string
	bus.Subscribe(func(e certCreated) {
		got = append(got, e.Name)
	})

	bus.Publish(certCreated{Name: "a"})
	bus.Publish(certCreated{Name: "b"})

	require.Equal(t, []string{"a", "b"}, got)
}

func TestPublish_SkipsNonMatchingSubscriber(t *testing.T) {
	bus := newTestBus()

	created := 0
	updated := 0
	bus.Subscribe(func(certCreated) { created++ })
	bus.Subscribe(func(certUpdated) { updated++ })

	bus.Publish(certUpdated{Name: "x"})

	require.Equal(t, 0, created)
	require.Equal(t, 1, updated)
}

func TestPublish_PanickingHandlerDoesNotAffectSiblings(t *testing.T) {
	bus := newTestBus()

	delivered := 0
	bus.Subscribe(func(certCreated) { panic("boom") })
	bus.Subscribe(func(certCreated) { delivered++ })

	require.NotPanics(t, func() {
		bus.Publish(certCreated{Name: "a"})
	})
	require.Equal(t, 1, delivered)
}

func TestSubscribe_RejectsNonFunction(t *testing.T) {
	bus := newTestBus()
	require.Panics(t, func() {
		bus.Subscribe("not a function")
	})
}

func TestUnsubscribe_RemovesHandler(t *testing.T) {
	bus := newTestBus()

	calls := 0
	handler := func(certCreated) { calls++ }
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	require.Equal(t, 0, bus.SubscribersCount())

	bus.Publish(certCreated{Name: "a"})
	require.Equal(t, 0, calls)
}

func TestMatchSignature(t *testing.T) {
	require.True(t, MatchSignature(func(certCreated) {}, []interface{}{certCreated{}}))
	require.False(t, MatchSignature(func(certCreated) {}, []interface{}{certUpdated{}}))
	require.False(t, MatchSignature(func(certCreated, certUpdated) {}, []interface{}{certCreated{}}))
	require.False(t, MatchSignature(42, []interface{}{certCreated{}}))
}
