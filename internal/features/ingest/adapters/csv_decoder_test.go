package adapters

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCSVDecoder_Supports verifies extension dispatch.
func TestCSVDecoder_Supports(t *testing.T) {
	d := NewCSVDecoder()
	assert.True(t, d.Supports(".csv"))
	assert.False(t, d.Supports(".xlsx"))
	assert.False(t, d.Supports(".sswweb"))
}

// TestCSVDecoder_Decode verifies a well-formed export round trips.
func TestCSVDecoder_Decode(t *testing.T) {
	content := "CTRC,Cidade,UF\n123,Campinas,SP\n456,Santos,SP\n"

	columns, rows, err := NewCSVDecoder().Decode(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"CTRC", "Cidade", "UF"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"123", "Campinas", "SP"}, rows[0])
	assert.Equal(t, []string{"456", "Santos", "SP"}, rows[1])
}

// TestCSVDecoder_RaggedRows verifies rows are padded and truncated to the
// header width.
func TestCSVDecoder_RaggedRows(t *testing.T) {
	content := "A,B,C\n1,2\n1,2,3,4\n"

	columns, rows, err := NewCSVDecoder().Decode(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, columns, 3)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2", ""}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
}

// TestCSVDecoder_LazyQuotes verifies stray quotes mid-field do not fail the parse.
func TestCSVDecoder_LazyQuotes(t *testing.T) {
	content := "A,B\nfoo \"bar\" baz,2\n"

	_, rows, err := NewCSVDecoder().Decode(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "foo \"bar\" baz", rows[0][0])
}

// TestCSVDecoder_Empty verifies empty input decodes to no columns.
func TestCSVDecoder_Empty(t *testing.T) {
	columns, rows, err := NewCSVDecoder().Decode(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, columns)
	assert.Nil(t, rows)
}
