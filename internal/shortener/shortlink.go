package shortener

import "time"

// Key is the short identifier substituted for a long URL.
type Key string

// ShortLink maps a short key to the URL it redirects to.
type ShortLink struct {
	Key       Key
	LongURL   string
	CreatedAt time.Time
}
