package runtime

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// WriteTranscript echoes the collected conversation to w.
func WriteTranscript(w io.Writer, result *RunResult) {
	header := fmt.Sprintf("Run %s for agent %q (thread %s) finished with status: %s",
		result.RunID, result.AgentName, result.ThreadID, result.Status)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, msg := range result.Messages {
		fmt.Fprintf(w, "[%s] %s\n", msg.Role, msg.Text())
		if n := len(msg.ImageFiles()); n > 0 {
			fmt.Fprintf(w, "  %d image attachment(s) available\n", n)
		}
	}

	fmt.Fprintln(w)
}

// SaveImageFiles returns a post-run hook that persists generated image
// attachments under dir as <fileID>_image_file.png. It runs while the
// session is still open, since downloading requires the client.
func SaveImageFiles(dir string, log zerolog.Logger) PostRunHook {
	return func(ctx context.Context, api API, result *RunResult) error {
		for _, msg := range result.Messages {
			for _, img := range msg.ImageFiles() {
				if img.FileID == "" {
					continue
				}
				path := filepath.Join(dir, img.FileID+"_image_file.png")
				if err := api.SaveFile(ctx, img.FileID, path); err != nil {
					return err
				}
				log.Info().Str("path", path).Msg("saved image file")
			}
		}
		return nil
	}
}
