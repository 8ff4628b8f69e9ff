package systems

import (
	"fmt"
	"strings"
)

// MessageLog keeps the most recent diagnostics. One log is created by the
// game and handed to every component that reports something.
type MessageLog struct {
	Messages    []ColoredMessage
	MaxMessages int
}

// NewMessageLog creates a message log keeping at most maxMessages entries
func NewMessageLog(maxMessages int) *MessageLog {
	if maxMessages <= 0 {
		maxMessages = 200
	}
	return &MessageLog{
		Messages:    []ColoredMessage{},
		MaxMessages: maxMessages,
	}
}

// Add adds a message to the log, classified by its prefix
func (ml *MessageLog) Add(message string) {
	ml.AddTyped(message, classify(message))
}

// Addf formats and adds a message
func (ml *MessageLog) Addf(format string, args ...any) {
	ml.Add(fmt.Sprintf(format, args...))
}

// AddTyped adds a message with an explicit type
func (ml *MessageLog) AddTyped(message string, messageType MessageType) {
	ml.Messages = append(ml.Messages, ColoredMessage{Text: message, Type: messageType})

	// Truncate if we have too many messages
	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
}

// Logger returns Add as a plain function for packages that must not depend
// on systems
func (ml *MessageLog) Logger() func(string) {
	return ml.Add
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []string {
	recent := ml.Recent(n)
	result := make([]string, len(recent))
	for i, m := range recent {
		result[i] = m.Text
	}
	return result
}

// Recent gets the n most recent messages with their types, newest first
func (ml *MessageLog) Recent(n int) []ColoredMessage {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}

	result := make([]ColoredMessage, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}

	return result
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = []ColoredMessage{}
}

func classify(message string) MessageType {
	switch {
	case strings.HasPrefix(message, "ERROR"):
		return MessageTypeError
	case strings.HasPrefix(message, "WARNING"):
		return MessageTypeWarning
	case strings.HasPrefix(message, "Baked"), strings.HasPrefix(message, "Evicted"):
		return MessageTypeBake
	default:
		return MessageTypeNormal
	}
}
