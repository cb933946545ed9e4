package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribe_DispatchInvokesHandler(t *testing.T) {
	m := NewManager()
	var got Event
	m.Subscribe(TypeHistoryRecorded, func(e Event) { got = e })

	m.Dispatch(TypeHistoryRecorded, HistoryStackData{UndoDepth: 2})

	assert.Equal(t, TypeHistoryRecorded, got.Type)
	assert.Equal(t, HistoryStackData{UndoDepth: 2}, got.Data)
}

func TestSubscribe_MultipleHandlersAllReceiveDispatch(t *testing.T) {
	m := NewManager()
	var a, b int
	m.Subscribe(TypeUndoPerformed, func(e Event) { a++ })
	m.Subscribe(TypeUndoPerformed, func(e Event) { b++ })

	m.Dispatch(TypeUndoPerformed, nil)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestSubscribe_UnsubscribeStopsFutureDispatch(t *testing.T) {
	m := NewManager()
	var calls int
	unsubscribe := m.Subscribe(TypeRedoPerformed, func(e Event) { calls++ })

	m.Dispatch(TypeRedoPerformed, nil)
	unsubscribe()
	m.Dispatch(TypeRedoPerformed, nil)

	assert.Equal(t, 1, calls)
}

func TestDispatch_DifferentTypeDoesNotCrossNotify(t *testing.T) {
	m := NewManager()
	var calls int
	m.Subscribe(TypeHistoryCleared, func(e Event) { calls++ })

	m.Dispatch(TypeIncrementCaptured, nil)

	assert.Zero(t, calls)
}

func TestDispatch_NoSubscribersIsANoOp(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() {
		m.Dispatch(TypeHistoryRecorded, nil)
	})
}

func TestSubscribe_HandlerUnsubscribingMidDispatchDoesNotCorruptIteration(t *testing.T) {
	m := NewManager()
	var unsubscribe func()
	var secondCalled bool

	unsubscribe = m.Subscribe(TypeHistoryRecorded, func(e Event) { unsubscribe() })
	m.Subscribe(TypeHistoryRecorded, func(e Event) { secondCalled = true })

	assert.NotPanics(t, func() {
		m.Dispatch(TypeHistoryRecorded, nil)
	})
	assert.True(t, secondCalled)
}
