// Package notify sends desktop notifications when the viewer exports or
// copies an image.
package notify

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/lightbox/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport emits a notification when a composed image is written to disk.
	EventExport Event = "export"
	// EventCopy emits a notification when an image is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the notification title and one message template per
// event. Templates take the event detail as their only verb.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Lightbox",
		Templates: map[Event]string{
			EventExport: "Exported %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// envPreferences maps LIGHTBOX_NOTIFY_* variables.
type envPreferences struct {
	Title      string `envconfig:"TITLE"`
	ExportText string `envconfig:"EXPORT_TEXT"`
	CopyText   string `envconfig:"COPY_TEXT"`
}

// LoadPreferences applies LIGHTBOX_NOTIFY_TITLE, LIGHTBOX_NOTIFY_EXPORT_TEXT
// and LIGHTBOX_NOTIFY_COPY_TEXT over the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	var env envPreferences
	if err := envconfig.Process("LIGHTBOX_NOTIFY", &env); err != nil {
		log.Printf("notification settings: %v", err)
		return prefs
	}
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&prefs.Title, env.Title)
	export, cp := prefs.Templates[EventExport], prefs.Templates[EventCopy]
	set(&export, env.ExportText)
	set(&cp, env.CopyText)
	prefs.Templates[EventExport], prefs.Templates[EventCopy] = export, cp
	return prefs
}

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body string, opts platform.Options) error
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: maps.Clone(prefs.Templates)}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Export announces a written file, using it as the notification icon.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
