package systems

import (
	"image/color"
)

// MessageType defines different types of messages that can appear in the log
type MessageType int

const (
	// MessageTypeNormal is for routine progress (light gray)
	MessageTypeNormal MessageType = iota
	// MessageTypeGeneration is for world generation progress (gold)
	MessageTypeGeneration
	// MessageTypeBake is for lightmap baking and eviction (blue)
	MessageTypeBake
	// MessageTypeWarning is for recoverable placement failures (yellow)
	MessageTypeWarning
	// MessageTypeError is for invariant violations (red)
	MessageTypeError
)

// ColoredMessage stores a message with its associated color
type ColoredMessage struct {
	Text string
	Type MessageType
}

// GetColor returns the color for the message based on its type
func (cm ColoredMessage) GetColor() color.RGBA {
	switch cm.Type {
	case MessageTypeGeneration:
		return color.RGBA{218, 165, 32, 255} // Gold
	case MessageTypeBake:
		return color.RGBA{100, 149, 237, 255} // Cornflower Blue
	case MessageTypeWarning:
		return color.RGBA{255, 255, 0, 255}
	case MessageTypeError:
		return color.RGBA{255, 100, 100, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}
