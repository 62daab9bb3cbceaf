// Package platform delivers desktop notifications through whatever the host
// operating system provides.
package platform

// AppName identifies the application to the notification service.
const AppName = "Lightbox"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown alongside the notification where
	// the platform supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays up. Zero uses
	// DefaultTimeoutMillis; not every platform honours it.
	TimeoutMillis int32
}

// DefaultTimeoutMillis applies when Options.TimeoutMillis is zero.
const DefaultTimeoutMillis = 5000

func (o Options) timeout() int32 {
	if o.TimeoutMillis > 0 {
		return o.TimeoutMillis
	}
	return DefaultTimeoutMillis
}
