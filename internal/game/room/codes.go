package room

import "time"

// codeAlphabet excludes visually ambiguous characters (I, O, 0, 1).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of every room code.
const CodeLength = 6

// maxCodeAttempts bounds random code draws before the timestamp fallback
// guarantees termination.
const maxCodeAttempts = 100

// generateCodeLocked returns a code unique among live rooms. Caller holds
// the registry lock.
func (reg *Registry) generateCodeLocked() string {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := reg.randomCode(CodeLength)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
	// Collision storm: suffix half the code with the current timestamp so
	// the draw terminates with a still-unique code.
	prefix := reg.randomCode(CodeLength / 2)
	return prefix + encodeTimestamp(reg.now(), CodeLength-CodeLength/2)
}

func (reg *Registry) randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[reg.rnd.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// encodeTimestamp renders t's millisecond clock in the code alphabet,
// keeping the low-order n digits.
func encodeTimestamp(t time.Time, n int) string {
	ms := t.UnixMilli()
	base := int64(len(codeAlphabet))
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = codeAlphabet[ms%base]
		ms /= base
	}
	return string(b)
}
