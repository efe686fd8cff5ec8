package cli

import (
	"fmt"

	"github.com/aidanlsb/projrename/docs"
	"github.com/aidanlsb/projrename/internal/ui"
)

// printUsage shows the embedded usage guide. A wrong argument count is not
// an error: the guide is the answer.
func printUsage(got int) error {
	if isJSONOutput() {
		outputError(ErrInvalidInput,
			fmt.Sprintf("expected 2 arguments, got %d", got),
			map[string]interface{}{"usage": docs.Usage},
			"projrename [relative-path/]original-name new-name")
		return nil
	}

	display := ui.NewDisplayContext()
	rendered, err := ui.RenderMarkdown(docs.Usage, display.AvailableWidth(ui.MarkdownRenderMargin*2))
	if err != nil {
		logger.Debug("usage rendering failed", "err", err)
		rendered = docs.Usage
	}
	fmt.Print(rendered)
	return nil
}
