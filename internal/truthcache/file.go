package truthcache

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/harrison/lycan/internal/bitset"
	"github.com/harrison/lycan/internal/filelock"
	"github.com/harrison/lycan/internal/statement"
)

// The cache file is a self-describing text format:
//
//	N=6
//	count=278
//	I-0-1 dddddddddddddddd
//	...
//
// one line per statement, the mask rendered as a big-endian hex integer
// padded to ceil(2^N/4) digits.

// Save writes the cache to path under an advisory lock, atomically.
func (c *Cache) Save(path string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "N=%d\n", c.n)
	fmt.Fprintf(&buf, "count=%d\n", len(c.order))
	for _, code := range c.order {
		fmt.Fprintf(&buf, "%s %s\n", code, c.masks[code].Hex())
	}
	if err := filelock.LockAndWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save truth cache: %w", err)
	}
	return nil
}

// Load reads a cache file for a village of size n. The header must name the
// same N, every code must parse for that N, and, when lib is non-nil, the
// file must cover the library exactly: no unknown codes, none missing.
// Violations are reported as ErrIncompatible.
func Load(path string, n int, lib *statement.Library) (*Cache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open truth cache: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<24)

	header, err := readHeaderLine(scanner, "N")
	if err != nil {
		return nil, err
	}
	fileN, err := strconv.Atoi(header)
	if err != nil {
		return nil, fmt.Errorf("%w: bad N header %q", ErrIncompatible, header)
	}
	if fileN != n {
		return nil, fmt.Errorf("%w: cache built for N=%d, requested N=%d", ErrIncompatible, fileN, n)
	}
	header, err = readHeaderLine(scanner, "count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(header)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad count header %q", ErrIncompatible, header)
	}

	c := &Cache{
		n:     n,
		order: make([]string, 0, count),
		masks: make(map[string]*bitset.Set, count),
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: malformed cache line %q", ErrIncompatible, line)
		}
		code, hex := fields[0], fields[1]
		if _, err := statement.Decode(code, n); err != nil {
			return nil, fmt.Errorf("%w: bad code %q: %v", ErrIncompatible, code, err)
		}
		if lib != nil {
			if _, ok := lib.Lookup(code); !ok {
				return nil, fmt.Errorf("%w: code %q not in library", ErrIncompatible, code)
			}
		}
		if _, dup := c.masks[code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrIncompatible, code)
		}
		mask, err := bitset.ParseHex(n, hex)
		if err != nil {
			return nil, fmt.Errorf("%w: bad mask for %q: %v", ErrIncompatible, code, err)
		}
		c.order = append(c.order, code)
		c.masks[code] = mask
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read truth cache: %w", err)
	}
	if len(c.order) != count {
		return nil, fmt.Errorf("%w: header claims %d entries, file has %d", ErrIncompatible, count, len(c.order))
	}
	if lib != nil && lib.Len() != len(c.order) {
		return nil, fmt.Errorf("%w: library has %d statements, cache has %d", ErrIncompatible, lib.Len(), len(c.order))
	}
	return c, nil
}

// LoadOrBuild loads the cache at path when the file exists, and otherwise
// builds it from the library, saving the result when path is non-empty.
// rebuild forces a fresh build. An existing file that is incompatible with
// the library is not rebuilt: Load's ErrIncompatible is returned.
func LoadOrBuild(path string, lib *statement.Library, rebuild bool) (*Cache, error) {
	if path != "" && !rebuild {
		if _, err := os.Stat(path); err == nil {
			return Load(path, lib.N, lib)
		}
	}
	c := Build(lib)
	if path != "" {
		if err := c.Save(path); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func readHeaderLine(scanner *bufio.Scanner, key string) (string, error) {
	if !scanner.Scan() {
		return "", fmt.Errorf("%w: missing %s header", ErrIncompatible, key)
	}
	line := strings.TrimSpace(scanner.Text())
	value, ok := strings.CutPrefix(line, key+"=")
	if !ok {
		return "", fmt.Errorf("%w: expected %s= header, found %q", ErrIncompatible, key, line)
	}
	return value, nil
}
