package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
	"github.com/custodia-labs/lexai/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure CaseActionService implements the interface.
var _ driving.CaseActionService = (*CaseActionService)(nil)

// CaseActionService provides clipboard and browser actions on case results.
type CaseActionService struct {
	copyText func(string) error
	openURL  func(string) error
}

// NewCaseActionService creates a case action service backed by the
// system clipboard and browser.
func NewCaseActionService() *CaseActionService {
	return &CaseActionService{
		copyText: clipboard.WriteAll,
		openURL:  openURL,
	}
}

// CopyCitation copies "Title, Citation" to the clipboard.
func (s *CaseActionService) CopyCitation(_ context.Context, result *domain.CaseResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", domain.ErrInvalidInput)
	}
	if err := s.copyText(FormatCitation(result)); err != nil {
		return fmt.Errorf("copying citation: %w", err)
	}
	return nil
}

// OpenSource opens the result's source link.
func (s *CaseActionService) OpenSource(_ context.Context, result *domain.CaseResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", domain.ErrInvalidInput)
	}
	link, err := openableLink(result.SourceLink)
	if err != nil {
		return err
	}
	logger.Debug("opening %s", link)
	return s.openURL(link)
}

// FormatCitation renders a case as "Title, Citation".
func FormatCitation(result *domain.CaseResult) string {
	if result.Citation == "" {
		return result.Title
	}
	return result.Title + ", " + result.Citation
}

// openableLink accepts only absolute http(s) links. Placeholder links such
// as "#" are reported as not found.
func openableLink(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: no source link", domain.ErrNotFound)
	}
	return u.String(), nil
}

// openURL opens a URL in the platform's default browser.
func openURL(link string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", link)
	case osLinux:
		cmd = exec.Command("xdg-open", link)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
