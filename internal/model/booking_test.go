package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEntry_AlwaysCarriesNote(t *testing.T) {
	entry := HistoryEntry{
		Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Actor:     ActorSystem,
		Action:    ActionCreated,
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 4)
	for _, key := range []string{"timestamp", "actor", "action", "note"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "", raw["note"])
}

func TestBooking_NullableFieldsSerializeAsNull(t *testing.T) {
	data, err := json.Marshal(Booking{ID: "b1", Status: StatusPending})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"price", "couponCode", "confirmationCode"} {
		v, ok := raw[key]
		assert.True(t, ok, "%s must be present", key)
		assert.Nil(t, v, "%s must be null", key)
	}
}

func TestBooking_CloneIsDeep(t *testing.T) {
	price := 200.0
	b := Booking{ID: "b1", Price: &price, History: []HistoryEntry{{Action: ActionCreated}}}

	c := b.Clone()
	*c.Price = 1
	c.History[0].Action = ActionCancelled

	assert.Equal(t, 200.0, *b.Price)
	assert.Equal(t, ActionCreated, b.History[0].Action)
}
