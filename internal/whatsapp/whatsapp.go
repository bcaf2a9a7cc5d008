// Package whatsapp builds wa.me deep links.
package whatsapp

import (
	"net/url"
	"strings"
	"unicode"
)

// BaseURL is the click-to-chat endpoint.
const BaseURL = "https://wa.me/"

// Normalize strips everything but digits from an E.164 number.
func Normalize(number string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return -1
		}
		return r
	}, number)
}

// uriComponent undoes the escapes where url.QueryEscape and the browser's
// encodeURIComponent disagree.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Encode percent-encodes text for the text query parameter the way
// encodeURIComponent does: spaces become %20 and !'()* stay literal.
func Encode(text string) string {
	return uriComponent.Replace(url.QueryEscape(text))
}

// Link returns the deep link that opens a chat with number pre-filled with text.
func Link(number, text string) string {
	return BaseURL + Normalize(number) + "?text=" + Encode(text)
}

// SupportLink returns a deep link that opens a chat without a message.
func SupportLink(number string) string {
	return BaseURL + Normalize(number)
}
