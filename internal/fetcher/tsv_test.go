package fetcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readRow struct {
	line   int
	fields []string
}

func collectRows(t *testing.T, input, delim string) ([]readRow, error) {
	t.Helper()
	var rows []readRow
	err := ReadRows(context.Background(), strings.NewReader(input), delim, func(line int, fields []string) error {
		rows = append(rows, readRow{line: line, fields: fields})
		return nil
	})
	return rows, err
}

func TestReadRows_Basic(t *testing.T) {
	rows, err := collectRows(t, "a,b,c\n1,2,3\n4,5,6\n", ",")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0].fields)
	assert.Equal(t, []string{"4", "5", "6"}, rows[2].fields)
	assert.Equal(t, 1, rows[0].line)
	assert.Equal(t, 3, rows[2].line)
}

func TestReadRows_TabDelimitedVariableWidth(t *testing.T) {
	input := "US\t62701\tSpringfield\n" + "US\t62702\n" + "US\t\t\t\n"
	rows, err := collectRows(t, input, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"US", "62701", "Springfield"}, rows[0].fields)
	assert.Equal(t, []string{"US", "62702"}, rows[1].fields)
	assert.Equal(t, []string{"US", "", "", ""}, rows[2].fields)
}

func TestReadRows_QuotesAreLiteral(t *testing.T) {
	input := "a\tb\n" +
		"\"Bad Town\tz\n" +
		"x\"y\t\"\n" +
		"c\td\n"
	rows, err := collectRows(t, input, "\t")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"\"Bad Town", "z"}, rows[1].fields)
	assert.Equal(t, 2, rows[1].line)
	assert.Equal(t, []string{"x\"y", "\""}, rows[2].fields)
	assert.Equal(t, []string{"c", "d"}, rows[3].fields)
	assert.Equal(t, 4, rows[3].line)
}

func TestReadRows_BlankLinesAndCRLF(t *testing.T) {
	rows, err := collectRows(t, "a\tb\r\n\r\n\nc\td", "\t")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0].fields)
	assert.Equal(t, []string{"c", "d"}, rows[1].fields)
	assert.Equal(t, 4, rows[1].line)
}

func TestReadRows_LineTooLong(t *testing.T) {
	input := "a\tb\n" + strings.Repeat("x", MaxLineBytes+1) + "\n"
	rows, err := collectRows(t, input, "\t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tsv: read line 2")
	assert.Len(t, rows, 1)
}

func TestReadRows_CallbackErrorStops(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	err := ReadRows(context.Background(), strings.NewReader("a\nb\nc\n"), "\t", func(int, []string) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestReadRows_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ReadRows(ctx, strings.NewReader("a\n"), "\t", func(int, []string) error {
		t.Fatal("callback should not run")
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := collectRows(t, "", "\t")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
