package runtime

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/aviary-ai/aviary"
)

func TestWriteTranscript(t *testing.T) {
	result := &RunResult{
		AgentName: "weather-agent",
		ThreadID:  "thread-456",
		RunID:     "run-789",
		Status:    ai.RunStatusCompleted,
		Messages: []ai.ThreadMessage{
			ai.NewTextMessage(ai.RoleUser, "What's the weather like in Seattle today?"),
			{
				Role: ai.RoleAssistant,
				Content: []ai.MessageContent{
					{Type: ai.ContentTypeText, Text: &ai.TextContent{Value: "Light rain, 12.0°C."}},
					{Type: ai.ContentTypeImageFile, ImageFile: &ai.ImageFileContent{FileID: "file-1"}},
				},
			},
		},
	}

	var buf strings.Builder
	WriteTranscript(&buf, result)
	out := buf.String()

	assert.Contains(t, out, `Run run-789 for agent "weather-agent" (thread thread-456) finished with status: completed`)
	assert.Contains(t, out, "[user] What's the weather like in Seattle today?")
	assert.Contains(t, out, "[assistant] Light rain, 12.0°C.")
	assert.Contains(t, out, "1 image attachment(s) available")
}

func TestSaveImageFiles(t *testing.T) {
	api := newFakeAPI()
	result := &RunResult{
		Messages: []ai.ThreadMessage{
			{
				Role: ai.RoleAssistant,
				Content: []ai.MessageContent{
					{Type: ai.ContentTypeImageFile, ImageFile: &ai.ImageFileContent{FileID: "file-1"}},
					{Type: ai.ContentTypeImageFile, ImageFile: &ai.ImageFileContent{FileID: ""}},
					{Type: ai.ContentTypeImageFile, ImageFile: &ai.ImageFileContent{FileID: "file-2"}},
				},
			},
		},
	}

	hook := SaveImageFiles("tmp/images", zerolog.Nop())
	require.NoError(t, hook(context.Background(), api, result))

	assert.Len(t, api.savedFiles, 2)
	assert.Equal(t, filepath.Join("tmp", "images", "file-1_image_file.png"), api.savedFiles["file-1"])
	assert.Equal(t, filepath.Join("tmp", "images", "file-2_image_file.png"), api.savedFiles["file-2"])
}
