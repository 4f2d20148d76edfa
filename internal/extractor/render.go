package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultRenderDPI = 150

// RenderFirstPage renders the first page of a PDF to a PNG file at the given
// DPI using pdftoppm (poppler-utils). outPath must end in ".png"; parent
// directories are created as needed.
func RenderFirstPage(pdfPath, outPath string, dpi int) error {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}

	prefix, err := pngPrefix(outPath)
	if err != nil {
		return err
	}
	if dpi <= 0 {
		dpi = defaultRenderDPI
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}

	// -singlefile writes exactly <prefix>.png with no page suffix.
	cmd := exec.Command("pdftoppm",
		"-f", "1", "-l", "1",
		"-r", strconv.Itoa(dpi),
		"-png", "-singlefile",
		pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}
	return nil
}

// pngPrefix returns the pdftoppm output prefix for a .png target path.
func pngPrefix(outPath string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(outPath), ".png") {
		return "", fmt.Errorf("render target must end in .png, got %q", outPath)
	}
	return outPath[:len(outPath)-len(".png")], nil
}

// ScreenshotName maps a source PDF path to its screenshot file name,
// e.g. "invoices/jun-2025.pdf" → "jun-2025.png".
func ScreenshotName(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}
