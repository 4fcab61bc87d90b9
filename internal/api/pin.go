package api

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PINLength is the required number of digits in the admin PIN.
const PINLength = 4

var pinRe = regexp.MustCompile(`^\d{4}$`)

// PINGate guards the admin panel with a 4-digit PIN. The bcrypt hash of the
// active PIN lives in a side file next to the database; until one has been
// set from the admin panel, the configured default PIN applies.
type PINGate struct {
	mu   sync.Mutex
	file string
	hash []byte
}

// NewPINGate loads the stored PIN hash, or hashes and stores the default PIN
// when no hash file exists yet.
func NewPINGate(file, defaultPIN string) (*PINGate, error) {
	g := &PINGate{file: file}

	data, err := os.ReadFile(file)
	if err == nil && len(data) > 0 {
		g.hash = data
		return g, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read pin file: %w", err)
	}

	if !pinRe.MatchString(defaultPIN) {
		return nil, fmt.Errorf("default pin must be %d digits", PINLength)
	}
	if err := g.Set(defaultPIN); err != nil {
		return nil, err
	}
	return g, nil
}

// Verify reports whether the given PIN matches the active one. Malformed
// input never matches.
func (g *PINGate) Verify(pin string) bool {
	if !pinRe.MatchString(pin) {
		return false
	}
	g.mu.Lock()
	hash := g.hash
	g.mu.Unlock()
	return bcrypt.CompareHashAndPassword(hash, []byte(pin)) == nil
}

// Set replaces the active PIN and persists its hash.
func (g *PINGate) Set(pin string) error {
	if !pinRe.MatchString(pin) {
		return fmt.Errorf("pin must be %d digits", PINLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := os.WriteFile(g.file, hash, 0o600); err != nil {
		return fmt.Errorf("write pin file: %w", err)
	}
	g.hash = hash
	return nil
}
