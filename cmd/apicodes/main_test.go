package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/internal/registry"
)

func testApp(t *testing.T) (*cli.App, *bytes.Buffer) {
	t.Helper()
	reg, err := registry.New(200)
	require.NoError(t, err)
	require.NoError(t, reg.Register(120, "Quota exceeded"))
	b := builder.New(reg, builder.Settings{})

	var out bytes.Buffer
	a := newApp(func(*cli.Context) (*builder.Builder, func(), error) {
		return b, func() {}, nil
	})
	a.Writer = &out
	return a, &out
}

func TestList(t *testing.T) {
	a, out := testApp(t)
	require.NoError(t, a.Run([]string{"apicodes", "list"}))

	text := out.String()
	assert.Contains(t, text, "Quota exceeded")
	assert.Contains(t, text, "reserved")
	assert.Contains(t, text, "user codes 20..200")
}

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "default encoding escapes unicode",
			args: []string{"make", "--code", "0", "--data", `{"test":"ąćę"}`},
			want: []string{"HTTP 200", fmt.Sprintf(`"test":"%su0105%su0107%su0119"`, `\`, `\`, `\`)},
		},
		{
			name: "unescaped unicode",
			args: []string{"make", "--code", "0", "--encoding", "271", "--data", `{"test":"ąćę"}`},
			want: []string{`"test":"ąćę"`},
		},
		{
			name: "failure with template",
			args: []string{"make", "--failure", "--code", "120", "--status", "429"},
			want: []string{"HTTP 429", `"success":false`, `"message":"Quota exceeded"`, `"data":null`},
		},
		{
			name: "message from another code",
			args: []string{"make", "--failure", "--code", "121", "--message-code", "120"},
			want: []string{`"code":121`, `"message":"Quota exceeded"`},
		},
		{
			name: "literal message",
			args: []string{"make", "--message", "Saved"},
			want: []string{`"code":0`, `"message":"Saved"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := testApp(t)
			require.NoError(t, a.Run(append([]string{"apicodes"}, tt.args...)))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestMake_Errors(t *testing.T) {
	a, _ := testApp(t)
	err := a.Run([]string{"apicodes", "make", "--code", "201", "--message", "x"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeCodeOutOfBounds))

	a, _ = testApp(t)
	err = a.Run([]string{"apicodes", "make", "--code", "0", "--data", "{"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "--data"))
}

func TestMake_UnknownMessageCode(t *testing.T) {
	a, _ := testApp(t)
	err := a.Run([]string{"apicodes", "make", "--code", "121", "--message-code", "130"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnknownCode))
}
