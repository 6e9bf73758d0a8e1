package utils

import (
	"net/url"
	"strings"
)

// DigitsOnly strips everything but 0-9 from a phone number.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a click-to-chat link with a prefilled message.
func WhatsAppLink(phone, message string) string {
	return "https://wa.me/" + DigitsOnly(phone) + "?text=" + url.QueryEscape(message)
}

// WhatsAppAddress is the Twilio address form for a phone number. Numbers
// without a country code are passed through unchanged.
func WhatsAppAddress(phone string) string {
	digits := DigitsOnly(phone)
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return "whatsapp:+" + digits
	}
	return "whatsapp:" + digits
}
