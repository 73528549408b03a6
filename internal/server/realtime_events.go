package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/helferherz/karmalama/internal/models"
)

// Event type constants prevent typos in event names.
const (
	EventLevelUp          = "level_up"
	EventBookingRequested = "booking_requested"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingRejected  = "booking_rejected"
)

const timeFormat = time.RFC3339Nano

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func userSummary(user models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":      user.ID,
		"name":    user.Name,
		"surname": user.Surname,
		"area":    user.Area,
		"level":   user.Level,
		"points":  user.Points,
	}
}
