package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarning(t *testing.T) {
	ev := Warning("Sessão expirada. Faça login novamente.")

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, LevelWarning, ev.Level)
	assert.Equal(t, "Sessão expirada. Faça login novamente.", ev.Message)
	assert.False(t, ev.OccurredAt.IsZero())

	// IDs are per-episode correlation handles; two events must not share one.
	assert.NotEqual(t, ev.ID, Warning("x").ID)
}

func TestNotifierFunc_NilSafe(t *testing.T) {
	var f NotifierFunc
	assert.NotPanics(t, func() { f.Notify(context.Background(), Event{}) })
}

func TestNotifierFunc_Delegates(t *testing.T) {
	var got Event
	f := NotifierFunc(func(_ context.Context, ev Event) { got = ev })
	f.Notify(context.Background(), Event{Message: "hi"})
	assert.Equal(t, "hi", got.Message)
}
