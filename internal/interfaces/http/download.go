package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// setAttachment marks the response as a download. Non-ASCII names are sent as an RFC 5987
// filename* parameter next to an ASCII fallback.
func setAttachment(c *fiber.Ctx, filename string) {
	c.Set(fiber.HeaderContentDisposition, contentDisposition(filename))
}

func contentDisposition(filename string) string {
	var fallback, encoded strings.Builder
	ascii := true
	for _, r := range filename {
		switch {
		case r == '"' || r == '\\':
			fallback.WriteByte('_')
		case r < 0x20 || r > 0x7e:
			fallback.WriteByte('_')
			ascii = false
		default:
			fallback.WriteRune(r)
		}
	}
	if ascii {
		return `attachment; filename="` + fallback.String() + `"`
	}
	for _, b := range []byte(filename) {
		if isAttrChar(b) {
			encoded.WriteByte(b)
		} else {
			fmt.Fprintf(&encoded, "%%%02X", b)
		}
	}
	return `attachment; filename="` + fallback.String() + `"; filename*=UTF-8''` + encoded.String()
}

// isAttrChar reports whether b may appear unescaped in an RFC 5987 value.
func isAttrChar(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", b) >= 0
}
