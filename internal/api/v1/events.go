package v1

import (
	"encoding/json"
	"net/http"
	"time"
)

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	eventType := r.URL.Query().Get("type")

	if limit < 0 || offset < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit and offset must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	events, total, err := s.deps.EventLog.Recent(eventType, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	resp := listEventsResponse{
		Items:  make([]EventResponse, len(events)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i, e := range events {
		resp.Items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Payload:    json.RawMessage(e.Payload),
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
