package render

import (
	"testing"

	"github.com/matzehuels/heatflow/pkg/errors"
)

func TestMissingConverter(t *testing.T) {
	orig := converter
	converter = "heatflow-no-such-converter"
	defer func() { converter = orig }()

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	_, err := ToPDF([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
	_, err = ToPNG(nil, 2)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("output does not look like a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}
