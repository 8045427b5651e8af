package extract

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/gendiv/internal/model"
)

const sampleChunk = `
FILE: run_7_ClassUnderTestApogen_ESTest.txt
  @Test(timeout = 4000)
  public void test00()  throws Throwable  {
      String string0 = "alice@example.com";
      Email email0 = Email.fromString(string0);
      String string1 = "42.00 USD";
      Amount amount0 = Amount.fromString( string1 );
      String id = "w-1";
      WalletNames.fromString(id);
      Goals.fromString(undeclared);
  }
`

func collect(ex *Extraction) []model.Usage {
	var out []model.Usage
	for u := range ex.Usages {
		out = append(out, u)
	}
	return out
}

func TestRegexExtractor_Declarations(t *testing.T) {
	ex, err := NewRegexExtractor().Extract(context.Background(), sampleChunk)
	require.NoError(t, err)

	want := map[string]string{
		"string0": "alice@example.com",
		"string1": "42.00 USD",
		"id":      "w-1",
	}
	if diff := cmp.Diff(want, ex.Declarations); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestRegexExtractor_UsagesInTextOrder(t *testing.T) {
	ex, err := NewRegexExtractor().Extract(context.Background(), sampleChunk)
	require.NoError(t, err)

	want := []model.Usage{
		{Category: model.CategoryEmail, Name: "string0"},
		{Category: model.CategoryAmount, Name: "string1"},
		{Category: model.CategoryWalletNames, Name: "id"},
		{Category: model.CategoryGoals, Name: "undeclared"},
	}
	if diff := cmp.Diff(want, collect(ex)); diff != "" {
		t.Errorf("usages mismatch (-want +got):\n%s", diff)
	}

	// The sequence is re-iterable.
	assert.Len(t, collect(ex), 4)
}

func TestRegexExtractor_UsagesStopEarly(t *testing.T) {
	ex, err := NewRegexExtractor().Extract(context.Background(), sampleChunk)
	require.NoError(t, err)

	var first model.Usage
	for u := range ex.Usages {
		first = u
		break
	}
	assert.Equal(t, model.Usage{Category: model.CategoryEmail, Name: "string0"}, first)
}

func TestRegexExtractor_LastDeclarationWins(t *testing.T) {
	chunk := `String s = "first"; String s = "second"; Email.fromString(s);`

	ex, err := NewRegexExtractor().Extract(context.Background(), chunk)
	require.NoError(t, err)

	assert.Equal(t, "second", ex.Declarations["s"])
	assert.Equal(t, map[model.Category][]string{model.CategoryEmail: {"second"}}, Group(ex))
}

func TestRegexExtractor_ContentUpToFirstTerminator(t *testing.T) {
	chunk := `String s = "a \"quoted\"; tail"; Email.fromString(s);`

	ex, err := NewRegexExtractor().Extract(context.Background(), chunk)
	require.NoError(t, err)

	// No escape handling: the first `";` ends the content.
	assert.Equal(t, `a \"quoted\`, ex.Declarations["s"])
}

func TestRegexExtractor_MalformedDeclarationIgnored(t *testing.T) {
	chunk := "String s = \"never closed\nEmail.fromString(s);"

	ex, err := NewRegexExtractor().Extract(context.Background(), chunk)
	require.NoError(t, err)

	assert.Empty(t, ex.Declarations)
	assert.Empty(t, Group(ex))
}

func TestRegexExtractor_EmptyChunk(t *testing.T) {
	ex, err := NewRegexExtractor().Extract(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, ex.Declarations)
	assert.Empty(t, collect(ex))
}

func TestRegexExtractor_IgnoresUnknownFactories(t *testing.T) {
	chunk := `String s = "x"; Currency.fromString(s); Email.valueOf(s); email.fromString(s);`

	ex, err := NewRegexExtractor().Extract(context.Background(), chunk)
	require.NoError(t, err)

	assert.Empty(t, collect(ex))
}

func TestGroup_DropsUnresolvedUsages(t *testing.T) {
	ex, err := NewRegexExtractor().Extract(context.Background(), `Email.fromString(ghost);`)
	require.NoError(t, err)

	assert.Empty(t, Group(ex))
}

func TestGroup_RepeatsValuePerUsage(t *testing.T) {
	chunk := `String a = "v"; Email.fromString(a); Goals.fromString(a); Email.fromString(a);`

	ex, err := NewRegexExtractor().Extract(context.Background(), chunk)
	require.NoError(t, err)

	want := map[model.Category][]string{
		model.CategoryEmail: {"v", "v"},
		model.CategoryGoals: {"v"},
	}
	if diff := cmp.Diff(want, Group(ex)); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestReferenced(t *testing.T) {
	ex, err := NewRegexExtractor().Extract(context.Background(), sampleChunk)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"string0":    true,
		"string1":    true,
		"id":         true,
		"undeclared": true,
	}, Referenced(ex))
}

func TestNew(t *testing.T) {
	e, err := New("regex")
	require.NoError(t, err)
	assert.Equal(t, "regex", e.Name())

	e, err = New("")
	require.NoError(t, err)
	assert.Equal(t, "regex", e.Name())

	_, err = New("grammar")
	assert.Error(t, err)
}

func TestRegexExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRegexExtractor().Extract(ctx, sampleChunk)
	assert.ErrorIs(t, err, context.Canceled)
}
