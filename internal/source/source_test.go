package source

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// fakeGetter serves fixture files keyed by URL. URLs outside the map fail,
// which doubles as the transport-failure case.
type fakeGetter struct {
	pages map[string]string
	calls []string
}

func (f *fakeGetter) Get(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	path, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", url)
	}
	return os.ReadFile(path)
}

// fakeRenderer serves fixture files for rendered pages and records the
// ready selector each call waited on.
type fakeRenderer struct {
	pages     map[string]string
	selectors []string
}

func (f *fakeRenderer) Open(_ context.Context, url, readySelector string) (string, error) {
	f.selectors = append(f.selectors, readySelector)
	path, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no fixture for %s", url)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fixture(name string) string {
	return "../../testdata/fixtures/" + name
}

func testWindow(t *testing.T, start, end string) Window {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		t.Fatal(err)
	}
	return Window{Start: s, End: e}
}

func TestNew(t *testing.T) {
	deps := Deps{Fetcher: &fakeGetter{}, Renderer: &fakeRenderer{}}

	for _, name := range Names() {
		ad, err := New(name, deps)
		if err != nil {
			t.Errorf("New(%q) error = %v", name, err)
			continue
		}
		if ad.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, ad.Name())
		}
	}

	if _, err := New("myspace", deps); err == nil {
		t.Error("New() expected error for unknown source")
	}
}

func TestWindow_Days(t *testing.T) {
	w := testWindow(t, "2025-03-22", "2025-03-25")
	days := w.Days()
	if len(days) != 3 {
		t.Fatalf("Days() returned %d days, want 3", len(days))
	}
	if days[0].Format("2006-01-02") != "2025-03-22" {
		t.Errorf("first day = %s", days[0].Format("2006-01-02"))
	}
	if days[2].Format("2006-01-02") != "2025-03-24" {
		t.Errorf("last day = %s, end bound must be exclusive", days[2].Format("2006-01-02"))
	}
}
