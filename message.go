package aviary

import (
	"strings"

	"github.com/google/uuid"
)

// Role represents the role of a message sender in a conversation thread.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ContentType identifies the kind of a thread message content item.
type ContentType string

const (
	ContentTypeText      ContentType = "text"
	ContentTypeImageFile ContentType = "image_file"
)

// TextContent holds the text value of a content item.
type TextContent struct {
	Value string `json:"value"`
}

// ImageFileContent references a file generated by the remote agent,
// retrievable through the file endpoint.
type ImageFileContent struct {
	FileID string `json:"file_id"`
}

// MessageContent is a single content item of a thread message. Exactly one
// of Text or ImageFile is set, according to Type.
type MessageContent struct {
	Type      ContentType       `json:"type"`
	Text      *TextContent      `json:"text,omitempty"`
	ImageFile *ImageFileContent `json:"image_file,omitempty"`
}

// ThreadMessage is a message stored in a remote conversation thread.
type ThreadMessage struct {
	ID      string           `json:"id"`
	Role    Role             `json:"role"`
	Content []MessageContent `json:"content"`
}

// Text returns the concatenated text content of the message.
func (m ThreadMessage) Text() string {
	var parts []string
	for _, c := range m.Content {
		if c.Type == ContentTypeText && c.Text != nil {
			parts = append(parts, c.Text.Value)
		}
	}
	return strings.Join(parts, "\n")
}

// ImageFiles returns the image file references attached to the message.
func (m ThreadMessage) ImageFiles() []ImageFileContent {
	var files []ImageFileContent
	for _, c := range m.Content {
		if c.Type == ContentTypeImageFile && c.ImageFile != nil {
			files = append(files, *c.ImageFile)
		}
	}
	return files
}

// NewTextMessage creates a thread message with a single text content item.
func NewTextMessage(role Role, text string) ThreadMessage {
	return ThreadMessage{
		Role: role,
		Content: []MessageContent{
			{Type: ContentTypeText, Text: &TextContent{Value: text}},
		},
	}
}

// GenerateRequestID creates a unique identifier for request correlation.
func GenerateRequestID() string {
	return "req-" + uuid.New().String()
}
