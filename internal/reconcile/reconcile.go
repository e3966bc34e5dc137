// Package reconcile keeps the generator's config file declaring the two
// template mappings tinted depends on.
package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const sectionHeader = "[templates]"

// Variant names for the two logical theme outputs.
const (
	VariantDark  = "dark"
	VariantLight = "light"
)

// Mapping links a generator template to the file it renders to.
type Mapping struct {
	Template string
	Target   string
}

// Ensure guarantees the generator config at path declares the
// [templates] section with dark and light entries. Existing entries are
// never touched, so manual edits survive. The file is written back only
// when something was actually inserted; running Ensure twice in a row
// leaves the file byte-identical on the second run. A missing file is
// treated as empty content.
func Ensure(path string, dark, light Mapping) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read generator config: %w", err)
	}

	content, changed := patch(string(data), dark, light)
	if !changed {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("write generator config: %w", err)
	}
	return true, nil
}

// patch inserts whatever is missing and reports whether anything changed.
// Each variant check re-reads the whole current content, including text
// inserted earlier in the same pass, so a variant can never be inserted
// twice.
func patch(content string, dark, light Mapping) (string, bool) {
	changed := false

	if !hasSection(content) {
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += sectionHeader + "\n"
		changed = true
	}

	for _, v := range []struct {
		name    string
		mapping Mapping
	}{
		{VariantDark, dark},
		{VariantLight, light},
	} {
		if hasEntry(content, v.name) {
			continue
		}
		content = insertBelowSection(content, entryLine(v.name, v.mapping))
		changed = true
	}

	return content, changed
}

// hasSection detects the [templates] section header as a line of its own.
func hasSection(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == sectionHeader {
			return true
		}
	}
	return false
}

// hasEntry reports whether the variant is already declared anywhere in
// the templates table. Detection parses the document rather than
// substring-matching raw text, so a theme name that merely contains
// "dark" cannot shadow the real entry.
func hasEntry(content, variant string) bool {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		// Unparseable user content: fall back to a conservative key scan
		// so we never double-insert into a file we cannot understand.
		return keyScan(content, variant)
	}
	section, ok := doc["templates"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = section[variant]
	return ok
}

// keyScan looks for a "variant =" key at the start of any line.
func keyScan(content, variant string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, variant+" =") || strings.HasPrefix(trimmed, variant+"=") {
			return true
		}
	}
	return false
}

// insertBelowSection places line directly below the section header.
func insertBelowSection(content, line string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+1)
	inserted := false
	for _, l := range lines {
		out = append(out, l)
		if !inserted && strings.TrimSpace(l) == sectionHeader {
			out = append(out, line)
			inserted = true
		}
	}
	if !inserted {
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func entryLine(variant string, m Mapping) string {
	return fmt.Sprintf("%s = { template = %q, target = %q }", variant, m.Template, m.Target)
}
