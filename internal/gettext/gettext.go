// Package gettext implements reading and writing of GNU gettext PO
// catalogs, reduced to what the translation backend needs: ordered
// translation units with plural forms, fuzzy flags and the header
// fields that declare the catalog language and plural arity.
package gettext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Unit is a single translatable message of a catalog.
type Unit struct {
	Comments   []string
	References []string
	Flags      []string

	Context     string
	ID          string
	IDPlural    string
	Translation string
	// PluralTranslations holds msgstr[1..n-1]; msgstr[0] is Translation.
	PluralTranslations []string
}

// HasPlural reports whether the unit declares a plural source form.
func (u *Unit) HasPlural() bool {
	return u.IDPlural != ""
}

// HasTranslation reports whether the singular translation is present.
func (u *Unit) HasTranslation() bool {
	return u.Translation != ""
}

// HasPluralTranslation reports whether every declared plural slot is filled.
func (u *Unit) HasPluralTranslation() bool {
	if len(u.PluralTranslations) == 0 {
		return false
	}
	for _, s := range u.PluralTranslations {
		if s == "" {
			return false
		}
	}
	return true
}

// PluralTranslation returns the plural form at index i, or "" when absent.
func (u *Unit) PluralTranslation(i int) string {
	if i < 0 || i >= len(u.PluralTranslations) {
		return ""
	}
	return u.PluralTranslations[i]
}

// IsFuzzy reports whether the unit carries the fuzzy flag.
func (u *Unit) IsFuzzy() bool {
	for _, f := range u.Flags {
		if f == "fuzzy" {
			return true
		}
	}
	return false
}

// File is a parsed PO catalog: a header plus ordered units.
type File struct {
	header string
	Units  []*Unit
}

// NewFile creates an empty catalog with the given header fields.
func NewFile(fields map[string]string) *File {
	var b strings.Builder
	order := []string{
		"Project-Id-Version", "Language", "Plural-Forms",
		"MIME-Version", "Content-Type", "Content-Transfer-Encoding",
	}
	seen := map[string]bool{}
	for _, k := range order {
		if v, ok := fields[k]; ok {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
			seen[k] = true
		}
	}
	for k, v := range fields {
		if !seen[k] {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	return &File{header: b.String()}
}

// HeaderField returns a header field value by name, "" when absent.
func (f *File) HeaderField(name string) string {
	for _, line := range strings.Split(f.header, "\n") {
		if idx := strings.Index(line, ":"); idx > 0 {
			if strings.EqualFold(strings.TrimSpace(line[:idx]), name) {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// Language returns the catalog's declared language, "" when undeclared.
func (f *File) Language() string {
	return f.HeaderField("Language")
}

// PluralCount returns the declared nplurals value from the Plural-Forms
// header. The second value is false when the header does not declare it.
func (f *File) PluralCount() (int, bool) {
	forms := f.HeaderField("Plural-Forms")
	if forms == "" {
		return 0, false
	}
	for _, part := range strings.Split(forms, ";") {
		part = strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(part, "nplurals="); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// Parse reads a PO catalog. Obsolete entries ("#~") are skipped.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var unit *Unit
	var plural map[int]string
	lastField := ""
	obsolete := false
	line := 0

	flush := func() {
		if unit == nil {
			return
		}
		if !obsolete {
			if len(plural) > 0 {
				max := 0
				for i := range plural {
					if i > max {
						max = i
					}
				}
				unit.Translation = plural[0]
				unit.PluralTranslations = make([]string, max)
				for i := 1; i <= max; i++ {
					unit.PluralTranslations[i-1] = plural[i]
				}
			}
			if unit.ID == "" {
				f.header = unit.Translation
			} else {
				f.Units = append(f.Units, unit)
			}
		}
		unit = nil
		plural = nil
		lastField = ""
		obsolete = false
	}

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		if unit == nil {
			unit = &Unit{}
			plural = map[int]string{}
		}
		if strings.HasPrefix(text, "#~") {
			obsolete = true
			continue
		}
		if strings.HasPrefix(text, "#") {
			switch {
			case strings.HasPrefix(text, "#:"):
				unit.References = append(unit.References, strings.TrimSpace(text[2:]))
			case strings.HasPrefix(text, "#,"):
				for _, flag := range strings.Split(text[2:], ",") {
					if flag = strings.TrimSpace(flag); flag != "" {
						unit.Flags = append(unit.Flags, flag)
					}
				}
			default:
				unit.Comments = append(unit.Comments, strings.TrimSpace(strings.TrimPrefix(text, "#")))
			}
			continue
		}
		switch {
		case strings.HasPrefix(text, "msgctxt "):
			unit.Context = unquote(text[len("msgctxt "):])
			lastField = "msgctxt"
		case strings.HasPrefix(text, "msgid_plural "):
			unit.IDPlural = unquote(text[len("msgid_plural "):])
			lastField = "msgid_plural"
		case strings.HasPrefix(text, "msgid "):
			unit.ID = unquote(text[len("msgid "):])
			lastField = "msgid"
		case strings.HasPrefix(text, "msgstr["):
			end := strings.Index(text, "]")
			if end < 0 {
				return nil, fmt.Errorf("line %d: malformed plural msgstr: %s", line, text)
			}
			idx, err := strconv.Atoi(text[len("msgstr["):end])
			if err != nil {
				return nil, fmt.Errorf("line %d: malformed plural index: %s", line, text)
			}
			plural[idx] = unquote(strings.TrimSpace(text[end+1:]))
			lastField = "msgstr[" + strconv.Itoa(idx) + "]"
		case strings.HasPrefix(text, "msgstr "):
			unit.Translation = unquote(text[len("msgstr "):])
			lastField = "msgstr"
		case strings.HasPrefix(text, `"`):
			val := unquote(text)
			switch {
			case lastField == "msgctxt":
				unit.Context += val
			case lastField == "msgid":
				unit.ID += val
			case lastField == "msgid_plural":
				unit.IDPlural += val
			case lastField == "msgstr":
				unit.Translation += val
			case strings.HasPrefix(lastField, "msgstr["):
				idx, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(lastField, "msgstr["), "]"))
				plural[idx] += val
			}
		default:
			return nil, fmt.Errorf("line %d: unexpected content: %s", line, text)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return f, nil
}

// Write serializes the catalog in PO format.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `msgid ""`)
	fmt.Fprintf(bw, "msgstr %s\n", quote(f.header))
	for _, u := range f.Units {
		fmt.Fprintln(bw)
		for _, c := range u.Comments {
			fmt.Fprintf(bw, "# %s\n", c)
		}
		for _, ref := range u.References {
			fmt.Fprintf(bw, "#: %s\n", ref)
		}
		if len(u.Flags) > 0 {
			fmt.Fprintf(bw, "#, %s\n", strings.Join(u.Flags, ", "))
		}
		if u.Context != "" {
			fmt.Fprintf(bw, "msgctxt %s\n", quote(u.Context))
		}
		fmt.Fprintf(bw, "msgid %s\n", quote(u.ID))
		if u.HasPlural() {
			fmt.Fprintf(bw, "msgid_plural %s\n", quote(u.IDPlural))
			fmt.Fprintf(bw, "msgstr[0] %s\n", quote(u.Translation))
			for i, s := range u.PluralTranslations {
				fmt.Fprintf(bw, "msgstr[%d] %s\n", i+1, quote(s))
			}
		} else {
			fmt.Fprintf(bw, "msgstr %s\n", quote(u.Translation))
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	if !strings.Contains(s, "\n") {
		return `"` + s + `"`
	}
	var b strings.Builder
	b.WriteString(`""`)
	for _, part := range strings.SplitAfter(s, "\n") {
		if part == "" {
			continue
		}
		b.WriteString("\n\"")
		b.WriteString(strings.ReplaceAll(part, "\n", `\n`))
		b.WriteString("\"")
	}
	return b.String()
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte(s[i])
				continue
			}
			i++
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
