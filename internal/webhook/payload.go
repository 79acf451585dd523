package webhook

import (
	"fmt"
	"strings"
)

// extractPayload pulls the subscriber ID and message text out of a
// ManyChat External Request body. ManyChat sends several shapes
// depending on flow configuration:
//
//	{subscriber_id, message}
//	{subscriber: {id}, message: {text}}
//	{data: {subscriber: {id}, message}}
//
// plus a top-level "text" field as last resort. Missing message yields
// an empty string, which the intent gate answers with its prompt reply.
func extractPayload(payload map[string]any) (subscriberID, message string) {
	if id, ok := scalarString(payload["subscriber_id"]); ok {
		subscriberID = id
		message = messageText(payload["message"])
	}

	if subscriberID == "" {
		if sub, ok := payload["subscriber"].(map[string]any); ok {
			if id, ok := scalarString(sub["id"]); ok {
				subscriberID = id
			}
			message = messageText(payload["message"])
		}
	}

	if subscriberID == "" {
		if data, ok := payload["data"].(map[string]any); ok {
			if sub, ok := data["subscriber"].(map[string]any); ok {
				if id, ok := scalarString(sub["id"]); ok {
					subscriberID = id
				}
			}
			message = messageText(data["message"])
		}
	}

	if message == "" {
		if text := messageText(payload["text"]); text != "" {
			message = text
		} else {
			message = messageText(payload["message"])
		}
	}

	return subscriberID, message
}

// messageText extracts the text from a message value that is either a
// plain string or an object with a "text" field.
func messageText(v any) string {
	switch m := v.(type) {
	case string:
		return strings.TrimSpace(m)
	case map[string]any:
		if s, ok := m["text"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// scalarString accepts string or numeric IDs, both of which ManyChat
// sends in the wild.
func scalarString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return fmt.Sprintf("%.0f", id), true
	default:
		return "", false
	}
}
