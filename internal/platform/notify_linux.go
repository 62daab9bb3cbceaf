//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall  = notifyDest + ".Notify"
	hintUrgency = "urgency"
)

// Notify sends a desktop notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{hintUrgency: dbus.MakeVariant(byte(1))}
	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyCall, 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints, opts.timeout())
	return call.Err
}
