package hilo

import (
	"encoding/binary"
	"errors"

	crypto_rand "crypto/rand"
	math_rand "math/rand"

	"github.com/rivo/uniseg"
)

func PanicRetToError(err interface{}) error {
	var typedErr error

	switch errType := err.(type) {
	case string:
		typedErr = errors.New(errType)
	case error:
		typedErr = errType
	default:
		typedErr = errors.New("unknown panic")
	}

	return typedErr
}

// NewRand returns a private rng. A zero seed is replaced by one read from
// crypto/rand.
func NewRand(seed int64) *math_rand.Rand {
	if seed == 0 {
		var b [8]byte

		_, err := crypto_rand.Read(b[:])
		if err != nil {
			panic("NewRand(): problem with crypto/rand")
		}

		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}

	return math_rand.New(math_rand.NewSource(seed))
}

// FillLeft return string filled in left by spaces in w cells
//
// taken from github.com/go-runewidth
func FillLeft(s string, w int) string {
	width := uniseg.StringWidth(s)
	count := w - width

	if count > 0 {
		b := make([]byte, count)
		for i := range b {
			b[i] = ' '
		}
		return string(b) + s
	}

	return s
}

// FillRight return string filled in right by spaces in w cells
//
// taken from github.com/go-runewidth
func FillRight(s string, w int) string {
	width := uniseg.StringWidth(s)
	count := w - width

	if count > 0 {
		b := make([]byte, count)
		for i := range b {
			b[i] = ' '
		}
		return s + string(b)
	}

	return s
}
