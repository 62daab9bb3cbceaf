package notify

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/lightbox/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(n *Notifier) *[]sent {
	var out []sent
	n.send = func(title, body string, opts platform.Options) error {
		out = append(out, sent{title, body, opts})
		return nil
	}
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Copy("chest-1")
	n.Export("x.png")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(*got))
	}
	var nilNotifier *Notifier
	nilNotifier.Copy("ok")
}

func TestCopyUsesTemplate(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(*got) != 1 || (*got)[0].body != "Copied image to clipboard" || (*got)[0].title != "Lightbox" {
		t.Fatalf("got %+v", *got)
	}
}

func TestExportReportsAbsolutePath(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Enable(EventExport, true)
	path := filepath.Join(t.TempDir(), "missing.png")
	n.Export(path)
	if len(*got) != 1 || !strings.HasSuffix((*got)[0].body, "missing.png") {
		t.Fatalf("got %+v", *got)
	}
	if (*got)[0].opts.IconPath != "" {
		t.Error("icon set for a file that does not exist")
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("LIGHTBOX_NOTIFY_TITLE", "Reading room")
	t.Setenv("LIGHTBOX_NOTIFY_EXPORT_TEXT", "Wrote %s")
	t.Setenv("LIGHTBOX_NOTIFY_COPY_TEXT", "")
	p := LoadPreferences()
	if p.Title != "Reading room" || p.Templates[EventExport] != "Wrote %s" {
		t.Errorf("prefs = %+v", p)
	}
	if p.Templates[EventCopy] != DefaultPreferences().Templates[EventCopy] {
		t.Error("empty override replaced the default")
	}
}
