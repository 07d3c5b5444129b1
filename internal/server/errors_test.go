package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/pipeline"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidSide, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidDefinition, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{errors.New(errors.ErrCodeRender, "x"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("dial tcp 10.0.0.1:6379: refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != string(errors.ErrCodeInternal) || body.Message != "internal server error" || body.Detail != "" {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := fmt.Errorf("line 3: bad key")
	writeError(rec, errors.Wrap(errors.ErrCodeInvalidDefinition, cause, "decode toml"))

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Message != "decode toml" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Detail == "" {
		t.Error("expected detail with the cause")
	}
}

func TestRecoverer(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, quietLogger()), WithLogger(quietLogger()))
	h := s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRenderOptions(t *testing.T) {
	q := map[string][]string{
		"format":     {"png"},
		"type":       {"nodelink"},
		"width":      {"640"},
		"margin":     {"0.2"},
		"no_corners": {"1"},
		"seam":       {"0.05"},
	}
	opts, err := renderOptions(q)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Formats[0] != "png" || opts.VizType != "nodelink" || opts.Width != 640 ||
		opts.MarginValue() != 0.2 || !opts.NoCorners || opts.Seam != 0.05 {
		t.Errorf("opts = %+v", opts)
	}

	opts, err = renderOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Formats[0] != pipeline.FormatSVG {
		t.Errorf("default format = %q", opts.Formats[0])
	}
	if opts.Margin != nil {
		t.Errorf("absent margin should stay unset, got %g", *opts.Margin)
	}

	opts, err = renderOptions(map[string][]string{"margin": {"0"}})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Margin == nil || *opts.Margin != 0 {
		t.Errorf("margin=0 should be kept as an explicit zero, got %v", opts.Margin)
	}

	if _, err := renderOptions(map[string][]string{"scale": {"NaN"}}); !errors.IsInvalid(err) {
		t.Errorf("NaN scale: err = %v", err)
	}
}
