package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	defaultNanoIDSize = 21
	nanoidAlphabet    = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoIDSize returns a random alphanumeric id of the given length.
func NanoIDSize(size int) string {
	if size <= 0 {
		size = defaultNanoIDSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
