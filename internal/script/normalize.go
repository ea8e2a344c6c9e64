package script

import "golang.org/x/text/unicode/norm"

// Normalize returns text in canonical composed form (NFC). It is idempotent.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
