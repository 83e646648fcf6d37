package room

import (
	"seotda-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the most recent log messages for clients that connect later
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendLogMessages(messages []*playable.LogMessage) {
	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key:  "logs",
			Data: messages,
		})
	}
}
