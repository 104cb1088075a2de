package collector

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// IDLedger is the newline-delimited file of game ids that were already
// scraped. It has a single writer.
type IDLedger struct {
	path string
	seen map[int]struct{}
}

// LoadLedger reads the ledger at path. A missing file is an empty ledger and
// lines that are not integers are ignored.
func LoadLedger(path string) (*IDLedger, error) {
	l := &IDLedger{path: path, seen: make(map[int]struct{})}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			continue
		}
		l.seen[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return l, nil
}

// Has reports whether id was already scraped.
func (l *IDLedger) Has(id int) bool {
	_, ok := l.seen[id]
	return ok
}

// Add records id in memory and appends it to the file.
func (l *IDLedger) Add(id int) error {
	if l.Has(id) {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", id); err != nil {
		f.Close()
		return fmt.Errorf("append ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	l.seen[id] = struct{}{}
	return nil
}

// Len returns the number of recorded ids.
func (l *IDLedger) Len() int { return len(l.seen) }
