package utils

import (
	"math/rand"
	"strings"
)

const (
	joinCodeLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	joinCodePrefixLen = 3
)

// GenerateJoinCode builds a class join code: three letters followed by three
// digits, e.g. "BUD483". When seed contains letters, the prefix is taken from
// them so codes stay recognizable ("Budi" -> "BUD"); otherwise the prefix is
// random.
func GenerateJoinCode(seed string) string {
	prefix := letterPrefix(seed)
	for len(prefix) < joinCodePrefixLen {
		prefix += string(joinCodeLetters[rand.Intn(len(joinCodeLetters))])
	}

	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < 3; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

func letterPrefix(seed string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(seed) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == joinCodePrefixLen {
				break
			}
		}
	}
	return b.String()
}
