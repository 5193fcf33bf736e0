package query

import "eventize/models"

// ReplaceTicket returns a copy of tickets where every entry with updated's
// EventUUID is replaced by updated. ok is false when nothing matched.
func ReplaceTicket(tickets []models.Ticket, updated models.Ticket) (out []models.Ticket, ok bool) {
	out = make([]models.Ticket, len(tickets))
	for i, t := range tickets {
		if t.EventUUID == updated.EventUUID {
			out[i] = updated
			ok = true
			continue
		}
		out[i] = t
	}
	return out, ok
}

func FindTicket(tickets []models.Ticket, eventUUID string) (models.Ticket, bool) {
	for _, t := range tickets {
		if t.EventUUID == eventUUID {
			return t, true
		}
	}
	return models.Ticket{}, false
}
