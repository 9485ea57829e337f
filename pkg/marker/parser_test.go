package marker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/markup"
)

func term(children ...*markup.Node) *markup.Node {
	return markup.Elem("indexterm", children...)
}

func newTestParser() (*Parser, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewParser(entry.NewStore(), logger), &logs
}

func values(s *entry.Store, ids []entry.ID) []string {
	var out []string
	for _, id := range ids {
		out = append(out, s.Get(id).Value)
	}
	return out
}

func TestParseTermPlainText(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(markup.Text("  Foo  Bar  ")), "")

	require.Len(t, ids, 1)
	e := p.Store.Get(ids[0])
	assert.Equal(t, "Foo Bar", e.Value)
	assert.Equal(t, "Foo Bar", e.FormattedText)
	_, hasSort := e.SortKey()
	assert.False(t, hasSort)
	assert.Equal(t, []string{"Foo Bar:"}, e.RefIDs.Values())
	assert.False(t, e.StartsRange())
	assert.False(t, e.EndsRange())
	assert.False(t, e.SuppressesPageNumber())
	assert.False(t, e.See.Present())
	assert.False(t, e.SeeAlso.Present())
	require.Len(t, e.Contents, 1)
}

func TestParseTermNested(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(markup.Text("Foo"), term(markup.Text("Bar"))), "")

	require.Len(t, ids, 1)
	foo := p.Store.Get(ids[0])
	assert.Equal(t, "Foo", foo.Value)
	assert.Equal(t, []string{"Foo:"}, foo.RefIDs.Values())
	require.Equal(t, 1, foo.Children.Len())

	bar := p.Store.Get(foo.Children.IDs()[0])
	assert.Equal(t, "Bar", bar.Value)
	assert.Equal(t, []string{"Foo:Bar:"}, bar.RefIDs.Values())
}

func TestParseTermDeepPath(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(
		markup.Text("A "),
		term(markup.Text(" B"), term(markup.Text("C"))),
	), "")

	a := p.Store.Get(ids[0])
	b := p.Store.Get(a.Children.IDs()[0])
	c := p.Store.Get(b.Children.IDs()[0])
	assert.Equal(t, []string{"A:B:C:"}, c.RefIDs.Values())
}

func TestParseTermLegacySortKey(t *testing.T) {
	tests := []struct {
		text      string
		wantValue string
		wantSort  string
		hasSort   bool
	}{
		{"Foo[foo]", "Foo", "foo", true},
		{"Foo]bar[", "Foo]bar[", "", false},
		{"Foo[]", "Foo", "", false},
		{"Foo [ foo ] tail", "Foo ", " foo ", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, _ := newTestParser()
			ids := p.ParseTerm(term(markup.Text(tt.text)), "")
			require.Len(t, ids, 1)
			e := p.Store.Get(ids[0])
			assert.Equal(t, tt.wantValue, e.Value)
			key, ok := e.SortKey()
			assert.Equal(t, tt.hasSort, ok)
			assert.Equal(t, tt.wantSort, key)
		})
	}
}

func TestParseTermSortAs(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(
		markup.Text("Foo[bar]"),
		markup.Elem("index-sort-as", markup.Text("sorted"), markup.Elem("b", markup.Text("ignored"))),
	), "")

	e := p.Store.Get(ids[0])
	assert.Equal(t, "Foo[bar]", e.Value, "explicit sort-as disables the bracket notation")
	key, ok := e.SortKey()
	assert.True(t, ok)
	assert.Equal(t, "sorted", key)
}

func TestParseTermRange(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		p, _ := newTestParser()
		ids := p.ParseTerm(term(markup.Text("Foo")).WithAttr("start", "x"), "")
		e := p.Store.Get(ids[0])
		assert.True(t, e.StartsRange())
		assert.False(t, e.EndsRange())
		assert.Equal(t, []string{"x"}, e.RefIDs.Values())
	})

	t.Run("end without text", func(t *testing.T) {
		p, _ := newTestParser()
		ids := p.ParseTerm(term().WithAttr("end", "x"), "")
		require.Len(t, ids, 1)
		e := p.Store.Get(ids[0])
		assert.Equal(t, "", e.Value)
		assert.True(t, e.EndsRange())
		assert.Equal(t, []string{"x"}, e.RefIDs.Values())
	})

	t.Run("both attributes", func(t *testing.T) {
		p, _ := newTestParser()
		ids := p.ParseTerm(term(markup.Text("Foo")).WithAttr("start", "s").WithAttr("end", "e"), "")
		e := p.Store.Get(ids[0])
		assert.False(t, e.StartsRange())
		assert.True(t, e.EndsRange())
		assert.Equal(t, []string{"s"}, e.RefIDs.Values())
	})
}

func TestParseTermElidesEmptyWrapper(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(
		markup.Text("  "),
		term(markup.Text("One")),
		term(markup.Text("Two")),
	), "")

	assert.Equal(t, []string{"One", "Two"}, values(p.Store, ids))
	assert.Empty(t, p.ParseTerm(term(), ""))
}

func TestParseTermMergesSiblingChildren(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(
		markup.Text("Foo"),
		term(markup.Text("Bar"), term(markup.Text("One"))),
		term(markup.Text("Bar"), term(markup.Text("Two"))),
	), "")

	foo := p.Store.Get(ids[0])
	require.Equal(t, 1, foo.Children.Len())
	bar := p.Store.Get(foo.Children.IDs()[0])
	assert.Equal(t, []string{"One", "Two"}, values(p.Store, bar.Children.IDs()))
}

func TestParseTermSee(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(
		markup.Text("Car"),
		markup.Elem("index-see", markup.Text("Automobile")),
		markup.Elem("index-see-also", markup.Text("Vehicle")),
	), "ignored:")

	e := p.Store.Get(ids[0])
	assert.Equal(t, "Car", e.Value)
	assert.True(t, e.SuppressesPageNumber())
	require.True(t, e.See.Present())
	require.True(t, e.SeeAlso.Present())

	see := p.Store.Get(e.See.IDs()[0])
	assert.Equal(t, "Automobile", see.Value)
	assert.Equal(t, []string{"Automobile:"}, see.RefIDs.Values(), "see terms start a fresh path")
	assert.Equal(t, "Vehicle", p.Store.Get(e.SeeAlso.IDs()[0]).Value)
	assert.Equal(t, []string{"ignored:Car:"}, e.RefIDs.Values())
}

func TestParseTermSeeConflictsWithChildren(t *testing.T) {
	p, logs := newTestParser()

	ids := p.ParseTerm(term(
		markup.Text("Car"),
		term(markup.Text("Engine")),
		markup.Elem("index-see", markup.Text("Automobile")),
		markup.Elem("index-see-also", markup.Text("Vehicle")),
	), "")

	e := p.Store.Get(ids[0])
	assert.Equal(t, 1, e.Children.Len())
	assert.False(t, e.See.Present())
	assert.False(t, e.SeeAlso.Present())
	assert.False(t, e.SuppressesPageNumber())

	output := logs.String()
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "see=Automobile")
	assert.Contains(t, output, "see_also=Vehicle")
	assert.Equal(t, 2, strings.Count(output, "level=WARN"))
}

func TestParseTermRichContent(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseTerm(term(
		markup.Elem("codeph", markup.Text("fmt.Println")),
		markup.Text(" function"),
	), "")

	e := p.Store.Get(ids[0])
	assert.Equal(t, "fmt.Println function", e.Value)
	require.Len(t, e.Contents, 2)
	assert.Equal(t, "codeph", e.Contents[0].Name)
}

func TestParseString(t *testing.T) {
	p, _ := newTestParser()

	ids := p.ParseString("  Foo \n Bar ", nil)

	require.Len(t, ids, 1)
	e := p.Store.Get(ids[0])
	assert.Equal(t, "Foo Bar", e.Value)
	assert.Equal(t, "Foo Bar", e.FormattedText)
	_, hasSort := e.SortKey()
	assert.False(t, hasSort)
	assert.Equal(t, []string{"Foo Bar:"}, e.RefIDs.Values())
	assert.False(t, e.StartsRange() || e.EndsRange() || e.SuppressesPageNumber() || e.RestoresPageNumber())
	assert.Nil(t, e.Contents)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{"  a \t\n b  ", "a b"},
		{"a b", "a b"},
		{"\n\n", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.input), "Normalize(%q)", tt.input)
	}
}
