package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetRequiredText(t *testing.T) {
	var out bytes.Buffer
	_, err := GetRequiredText(rdr("   \n"), "Name?", &out)
	assert.ErrorIs(t, err, errEmptyInput)

	got, err := GetRequiredText(rdr(" Bob \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got)
}

func TestGetID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "valid", input: "42\n", want: 42},
		{name: "padded", input: "  7 \r\n", want: 7},
		{name: "zero", input: "0\n", wantErr: true},
		{name: "negative", input: "-3\n", wantErr: true},
		{name: "text", input: "abc\n", wantErr: true},
		{name: "empty", input: "\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetID(rdr(tt.input), "Id?", &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
