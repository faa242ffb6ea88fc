package helper

import (
	"crypto/rand"
	"fmt"
)

// Charset without 0/O/1/I so references survive being read out over the phone.
const bookingRefCharset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const bookingRefLength = 8

// GenerateBookingReference returns a human-shareable reference like "REQ-7K2MPX4A".
// The prefix distinguishes service requests (REQ) from event tickets (EVT).
func GenerateBookingReference(prefix string) string {
	buf := make([]byte, bookingRefLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the host is broken; fall back to a zero ref
		// rather than panic inside a request handler.
		return fmt.Sprintf("%s-%s", prefix, "00000000")
	}
	for i, b := range buf {
		buf[i] = bookingRefCharset[int(b)%len(bookingRefCharset)]
	}
	return fmt.Sprintf("%s-%s", prefix, string(buf))
}
