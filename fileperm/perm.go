/*
 * MIT License
 *
 * Copyright (c) 2026 flog authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package fileperm gives a type-safe wrapper around os.FileMode that
// config structs can parse from either an octal string ("0644") or an
// ls-style symbolic string ("rwxr-xr-x", optionally prefixed with the
// file-type character), the two forms a unix-socket file's permission
// is commonly expressed in configuration.
package fileperm

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Perm wraps os.FileMode so socket/config can carry it as a distinct,
// independently-parseable config field.
type Perm os.FileMode

// Parse parses an octal string ("0644") or a symbolic permission string
// ("rwxr-xr-x", or "-rwxr-xr-x" with a leading file-type character).
func Parse(s string) (Perm, error) {
	return parseString(s)
}

// ParseFileMode converts an os.FileMode, as returned by os.Stat, to a Perm.
func ParseFileMode(m os.FileMode) Perm {
	return Perm(m)
}

// ParseInt parses a decimal int as an octal permission value, i.e.
// ParseInt(420) yields the same Perm as Parse("0644").
func ParseInt(i int) (Perm, error) {
	return parseString(strconv.FormatInt(int64(i), 8))
}

// ParseInt64 is ParseInt taking an int64.
func ParseInt64(i int64) (Perm, error) {
	return parseString(strconv.FormatInt(i, 8))
}

// ParseByte is Parse over a byte slice.
func ParseByte(b []byte) (Perm, error) {
	return parseString(string(b))
}

func parseString(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")

	if v, err := strconv.ParseUint(s, 8, 32); err == nil {
		if v > math.MaxUint32 {
			return Perm(0), fmt.Errorf("fileperm: invalid permission %q", s)
		}
		return Perm(v), nil
	}
	return parseSymbolic(s)
}

func parseSymbolic(s string) (Perm, error) {
	if len(s) != 9 && len(s) != 10 {
		return 0, fmt.Errorf("fileperm: invalid permission %q", s)
	}

	var mode os.FileMode
	start := 0

	if len(s) == 10 {
		switch s[0] {
		case '-':
		case 'd':
			mode |= os.ModeDir
		case 'l':
			mode |= os.ModeSymlink
		case 'c':
			mode |= os.ModeDevice | os.ModeCharDevice
		case 'b':
			mode |= os.ModeDevice
		case 'p':
			mode |= os.ModeNamedPipe
		case 's':
			mode |= os.ModeSocket
		case 'D':
			mode |= os.ModeIrregular
		default:
			return 0, fmt.Errorf("fileperm: invalid file type character %q", s[0])
		}
		start = 1
	}

	for i := 0; i < 3; i++ {
		group := s[start+i*3 : start+i*3+3]
		v, err := parseTriplet(group)
		if err != nil {
			return 0, err
		}
		mode |= os.FileMode(v) << uint(6-i*3)
	}

	return Perm(mode), nil
}

func parseTriplet(g string) (uint8, error) {
	var v uint8
	switch g[0] {
	case 'r':
		v += 4
	case '-':
	default:
		return 0, fmt.Errorf("fileperm: invalid read flag %q", g[0])
	}
	switch g[1] {
	case 'w':
		v += 2
	case '-':
	default:
		return 0, fmt.Errorf("fileperm: invalid write flag %q", g[1])
	}
	switch g[2] {
	case 'x':
		v += 1
	case '-':
	default:
		return 0, fmt.Errorf("fileperm: invalid execute flag %q", g[2])
	}
	return v, nil
}

func (p Perm) FileMode() os.FileMode { return os.FileMode(p.Uint32()) }

func (p Perm) String() string { return fmt.Sprintf("%#o", p.Uint64()) }

func (p Perm) Int64() int64 {
	if uint64(p) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(p)
}

func (p Perm) Int() int {
	if uint64(p) > math.MaxInt {
		return math.MaxInt
	}
	return int(p)
}

func (p Perm) Uint64() uint64 { return uint64(p) }

func (p Perm) Uint32() uint32 {
	if uint64(p) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(p)
}

func (p Perm) Uint() uint {
	if uint64(p) > math.MaxUint {
		return math.MaxUint
	}
	return uint(p)
}

func (p Perm) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Perm) UnmarshalText(text []byte) error {
	v, err := ParseByte(text)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
