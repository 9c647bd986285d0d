// Package browser opens article links with the platform's default opener.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/phishwise/phishwise/internal/validation"
)

// openCommand returns the opener command for the current platform.
func openCommand(link string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", link)
	case "windows":
		// rundll32 avoids shell interpretation of the URL
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		return exec.Command("xdg-open", link)
	}
}

// Open launches the system browser on the link. The link is validated first;
// non-http(s) schemes coming from the API are refused rather than executed.
func Open(link string) error {
	if err := validation.ValidateArticleLink(link); err != nil {
		return err
	}
	if err := openCommand(link).Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
