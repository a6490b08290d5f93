package gettext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePo = `msgid ""
msgstr ""
"Project-Id-Version: commtrans\n"
"Language: it_IT\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"
"Content-Type: text/plain; charset=UTF-8\n"

#: src/app.go:42
msgid "Hello"
msgstr "Ciao"

#, fuzzy
msgid "Goodbye"
msgstr "Arrivederci"

msgctxt "menu"
msgid "Open"
msgstr "Apri"

msgid "%d item"
msgid_plural "%d items"
msgstr[0] "%d elemento"
msgstr[1] "%d elementi"

#~ msgid "Removed"
#~ msgstr "Rimosso"

msgid "Multi"
msgstr ""
"line one\n"
"line two"
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(samplePo))
	require.NoError(t, err)

	assert.Equal(t, "it_IT", f.Language())
	n, ok := f.PluralCount()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	require.Len(t, f.Units, 5)

	hello := f.Units[0]
	assert.Equal(t, "Hello", hello.ID)
	assert.Equal(t, "Ciao", hello.Translation)
	assert.Equal(t, []string{"src/app.go:42"}, hello.References)
	assert.False(t, hello.IsFuzzy())
	assert.False(t, hello.HasPlural())

	assert.True(t, f.Units[1].IsFuzzy())

	open := f.Units[2]
	assert.Equal(t, "menu", open.Context)
	assert.Equal(t, "Apri", open.Translation)

	items := f.Units[3]
	assert.True(t, items.HasPlural())
	assert.True(t, items.HasPluralTranslation())
	assert.Equal(t, "%d items", items.IDPlural)
	assert.Equal(t, "%d elemento", items.Translation)
	assert.Equal(t, "%d elementi", items.PluralTranslation(0))
	assert.Equal(t, "", items.PluralTranslation(1))

	assert.Equal(t, "line one\nline two", f.Units[4].Translation)
}

func TestParse_HeaderOnly(t *testing.T) {
	f, err := Parse(strings.NewReader("msgid \"\"\nmsgstr \"Language: de_DE\\n\"\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Units)
	assert.Equal(t, "de_DE", f.Language())
}

func TestParse_UndeclaredHeader(t *testing.T) {
	f, err := Parse(strings.NewReader("msgid \"x\"\nmsgstr \"y\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "", f.Language())
	_, ok := f.PluralCount()
	assert.False(t, ok)
}

func TestParse_MalformedPluralIndex(t *testing.T) {
	_, err := Parse(strings.NewReader("msgid \"x\"\nmsgid_plural \"xs\"\nmsgstr[zero] \"y\"\n"))
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	f := NewFile(map[string]string{
		"Language":     "it_IT",
		"Plural-Forms": "nplurals=2; plural=(n != 1);",
	})
	f.Units = append(f.Units,
		&Unit{ID: "Hello", Translation: "Ciao"},
		&Unit{ID: "Say \"hi\"", Translation: "Di' \"ciao\""},
		&Unit{Context: "menu", ID: "Open", Translation: "Apri"},
		&Unit{
			ID:                 "%d item",
			IDPlural:           "%d items",
			Translation:        "%d elemento",
			PluralTranslations: []string{"%d elementi"},
		},
		&Unit{ID: "Multi", Translation: "a\nb"},
	)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, "it_IT", parsed.Language())
	require.Len(t, parsed.Units, len(f.Units))
	for i, want := range f.Units {
		got := parsed.Units[i]
		assert.Equal(t, want.Context, got.Context)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.IDPlural, got.IDPlural)
		assert.Equal(t, want.Translation, got.Translation)
		assert.Equal(t, len(want.PluralTranslations), len(got.PluralTranslations))
	}
}

func TestHasPluralTranslation(t *testing.T) {
	u := &Unit{ID: "%d item", IDPlural: "%d items", Translation: "%d elemento"}
	assert.False(t, u.HasPluralTranslation())
	u.PluralTranslations = []string{""}
	assert.False(t, u.HasPluralTranslation())
	u.PluralTranslations = []string{"%d elementi"}
	assert.True(t, u.HasPluralTranslation())
}
