package random

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

var ErrInvalidBound = errors.New("random: bound must be positive")

// Source yields uniformly distributed integers in [0, n).
type Source interface {
	Intn(n int) (int, error)
}

// CryptoSource draws from crypto/rand. Safe for concurrent use.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(v.Int64()), nil
}

// SeededSource is a deterministic PCG generator, used where draws must be reproducible.
type SeededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n), nil
}

// Shuffle performs an in-place Fisher-Yates shuffle of the slice using src.
func Shuffle[T any](slice []T, src Source) error {
	if src == nil {
		src = CryptoSource{}
	}
	for i := len(slice) - 1; i > 0; i-- {
		j, err := src.Intn(i + 1)
		if err != nil {
			return err
		}
		slice[i], slice[j] = slice[j], slice[i]
	}
	return nil
}
