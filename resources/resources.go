// Package resources embeds the JSON fixtures served by the mock backend client.
package resources

import _ "embed"

//go:embed events.json
var EventsJSON []byte

//go:embed tickets.json
var TicketsJSON []byte

//go:embed event_details.json
var EventDetailsJSON []byte
