package starcitizen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// controlPrefix scopes the localization keys that controls reference
const controlPrefix = "ui_C"

const referenceMarker = "@"

// Localization - control string key -> display text
type Localization map[string]string

// ParseGlobalIni reads the game's key=value localization store, keeping only
// control strings. A key with a ",<flag>" suffix is also stored without it.
func ParseGlobalIni(reader io.Reader) (Localization, error) {
	loc := make(Localization)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := line[:eq]
		if !strings.HasPrefix(key, controlPrefix) {
			continue
		}
		value := line[eq+1:]
		if comma := strings.IndexByte(key, ','); comma >= 0 {
			loc[key[:comma]] = value
		}
		loc[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading localization: %w", err)
	}
	return loc, nil
}

// Resolve returns the display text for a reference such as "@ui_CIExit".
// Unknown references are returned unchanged.
func (l Localization) Resolve(key string) string {
	if len(key) == 0 {
		return ""
	}
	if value, found := l[strings.TrimPrefix(key, referenceMarker)]; found {
		return value
	}
	return key
}
