package utils

// BoolToString formats b as a single binary digit.
func BoolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
