package query

import (
	"testing"

	"eventize/models"

	"github.com/stretchr/testify/assert"
)

func TestReplaceTicket(t *testing.T) {
	tickets := []models.Ticket{
		{EventUUID: "1", IsValid: true, Title: "Rock"},
		{EventUUID: "2", IsValid: true, Title: "Jazz"},
	}

	out, ok := ReplaceTicket(tickets, tickets[1].Invalidated())

	assert.True(t, ok)
	assert.True(t, out[0].IsValid)
	assert.False(t, out[1].IsValid)
	assert.True(t, tickets[1].IsValid, "input must not be mutated")

	out, ok = ReplaceTicket(tickets, models.Ticket{EventUUID: "9"})
	assert.False(t, ok)
	assert.Equal(t, tickets, out)
}

func TestFindTicket(t *testing.T) {
	tickets := []models.Ticket{{EventUUID: "1"}, {EventUUID: "2", Title: "Jazz"}}

	got, ok := FindTicket(tickets, "2")
	assert.True(t, ok)
	assert.Equal(t, "Jazz", got.Title)

	_, ok = FindTicket(tickets, "3")
	assert.False(t, ok)
}
