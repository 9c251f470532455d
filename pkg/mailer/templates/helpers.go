package templates

import (
	"time"
)

// Branding is the sender-side information stamped onto every email.
type Branding struct {
	CompanyName string
	AppName     string
	SupportURL  string
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithSupportURL(url string) Option { return func(d *EmailData) { d.SupportURL = url } }

// NewBaseEmailData fills the shared fields from b and then applies opts.
func NewBaseEmailData(b Branding, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,

		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Branding, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, name, email, opts...))
}
