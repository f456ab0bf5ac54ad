package app

// truncateRunes returns a prefix of s holding at most max runes, never
// splitting a UTF-8 sequence. A non-positive max leaves s untouched.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
