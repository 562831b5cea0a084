package action

import "strings"

// ParseVK converts a key token (e.g. "A", "F3", "LEFT") into a Windows
// virtual-key code. Recognizes letters, digits, F1..F12, arrows and SPACE.
// Unknown tokens return 0.
func ParseVK(key string) byte {
	k := strings.ToUpper(strings.TrimSpace(key))
	if len(k) == 1 {
		c := k[0]
		if c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			return c
		}
	}
	if len(k) >= 2 && len(k) <= 3 && k[0] == 'F' {
		n := 0
		for _, c := range k[1:] {
			if c < '0' || c > '9' {
				n = -1
				break
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 12 {
			return byte(0x70 + (n - 1)) // VK_F1=0x70
		}
	}
	switch k {
	case "LEFT":
		return 0x25
	case "UP":
		return 0x26
	case "RIGHT":
		return 0x27
	case "DOWN":
		return 0x28
	case "SPACE":
		return 0x20
	case "SHIFT":
		return 0x10
	}
	return 0
}
