package workflow

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrIdentifiersExhausted = errors.New("Plus d'identifiants disponibles")
	ErrUnknownIdentifier    = errors.New("dernier identifiant hors alphabet")
)

// IdentifierAllocator picks the identifier of the next category from the ones
// already taken. Callers insert under a unique index and retry on conflict.
type IdentifierAllocator interface {
	Next(existing []string) (string, error)
	Valid(identifier string) bool
}

func AllocatorFor(variant Variant) IdentifierAllocator {
	if variant == VariantBigwater {
		return SequenceAllocator{}
	}
	return LetterAllocator{}
}

// LetterAllocator hands out A..Z after the lexicographically last identifier.
type LetterAllocator struct{}

func (LetterAllocator) Next(existing []string) (string, error) {
	if len(existing) == 0 {
		return "A", nil
	}
	sorted := append([]string(nil), existing...)
	sort.Strings(sorted)
	last := sorted[len(sorted)-1]

	if len(last) != 1 {
		return "", ErrUnknownIdentifier
	}
	idx := strings.Index(Alphabet, last)
	switch {
	case idx < 0:
		return "", ErrUnknownIdentifier
	case idx == len(Alphabet)-1:
		return "", ErrIdentifiersExhausted
	}
	return string(Alphabet[idx+1]), nil
}

func (LetterAllocator) Valid(identifier string) bool {
	return len(identifier) == 1 && strings.Contains(Alphabet, identifier)
}

// SequenceAllocator hands out max+1 over the numeric identifiers, starting at 1.
type SequenceAllocator struct{}

func (SequenceAllocator) Next(existing []string) (string, error) {
	maxN := 0
	for _, id := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return strconv.Itoa(maxN + 1), nil
}

func (SequenceAllocator) Valid(identifier string) bool {
	n, err := strconv.Atoi(identifier)
	return err == nil && n > 0
}
