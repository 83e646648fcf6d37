package playable

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage(0, "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.True(t, before.Before(lm.Time))
	assert.True(t, time.Now().After(lm.Time))
	assert.Nil(t, lm.Cards)
	assert.NotEmpty(t, lm.UUID)
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage(1, "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []int64{1}, lm.PlayerIDs)
}

func TestAdditionalData(t *testing.T) {
	a := assert.New(t)

	var data AdditionalData
	a.NoError(json.Unmarshal([]byte(`{"action":"half","ready":true,"amount":10}`), &data))

	s, ok := data.GetString("action")
	a.True(ok)
	a.Equal("half", s)

	_, ok = data.GetString("amount")
	a.False(ok)

	b, ok := data.GetBool("ready")
	a.True(ok)
	a.True(b)

	_, ok = data.GetBool("missing")
	a.False(ok)
}

func TestResponse_IsBroadcast(t *testing.T) {
	assert.True(t, OK().IsBroadcast())
	assert.Equal(t, "abc", OK("abc").Context)
	assert.False(t, (&Response{Key: "event", Recipient: 3}).IsBroadcast())

	b, err := json.Marshal(&Response{Key: "event", Recipient: 3})
	assert.NoError(t, err)
	assert.Equal(t, `{"key":"event","value":"","data":null,"context":""}`, string(b))
}
