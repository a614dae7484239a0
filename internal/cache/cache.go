package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxValueSize is the write ceiling for a single domain snapshot. Writes
// above it are rejected so a runaway payload cannot fill the device; the
// caller logs and carries on, mirroring a storage-quota failure.
const MaxValueSize = 2 << 20

// Store is the device-local tier: one JSON snapshot file per tenant and
// domain under a shared root directory. Operations are synchronous and the
// root is the only resource shared between processes on the same device.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Path returns the snapshot file for a tenant+domain slot.
func (s *Store) Path(tenant, domain string) string {
	return filepath.Join(s.root, sanitize(tenant), sanitize(domain)+".json")
}

// Get reads the current snapshot. A missing slot is not an error; it
// reports ok=false.
func (s *Store) Get(tenant, domain string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.Path(tenant, domain))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set replaces the snapshot as one unit, last write wins. The write goes
// through a temp file and rename so readers never observe a torn snapshot.
func (s *Store) Set(tenant, domain string, value []byte) error {
	if len(value) > MaxValueSize {
		return fmt.Errorf("value for %s/%s exceeds size ceiling (%d > %d bytes)", tenant, domain, len(value), MaxValueSize)
	}
	path := s.Path(tenant, domain)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete empties the slot. Deleting a slot that was never written is a
// no-op.
func (s *Store) Delete(tenant, domain string) error {
	err := os.Remove(s.Path(tenant, domain))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// sanitize keeps tenant/domain ids usable as path segments.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
