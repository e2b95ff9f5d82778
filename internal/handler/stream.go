package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Gifford23/youth-xtreme-checkin/internal/handler/dto"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
)

// StreamRoster serves the live roster as server-sent events: the full snapshot
// on connect and again after every change to the event's roster. Closing the
// request (navigation away, event switch) tears the subscription down before
// any other stream is opened, so no stale deltas are ever delivered.
func (h *Handler) StreamRoster(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	sub, err := h.rosterStream.Subscribe(c.Request.Context(), eventID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-sub.Updates():
			if !ok {
				return
			}

			resp := make([]dto.RegistrationResponse, 0, len(snapshot))
			for _, r := range snapshot {
				resp = append(resp, dto.ToRegistrationResponse(r))
			}

			data, err := json.Marshal(resp)
			if err != nil {
				c.Set("error", err.Error())
				return
			}

			fmt.Fprintf(c.Writer, "event: roster\ndata: %s\n\n", data)
			c.Writer.Flush()
		}
	}
}
