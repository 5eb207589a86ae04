package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindscript-lang/mindscript/internal/config"
	"github.com/mindscript-lang/mindscript/internal/store"
)

func TestREPLPersistsBindingsAcrossLines(t *testing.T) {
	r := NewREPL(config.Default(), nil, 0)
	in := strings.NewReader("let x = 5\nx + 1\n")
	var out, errOut bytes.Buffer
	require.NoError(t, r.Run(in, &out, &errOut))
	require.Contains(t, out.String(), "6")
	require.Empty(t, errOut.String())
}

func TestREPLReportsEvalErrorsAndContinues(t *testing.T) {
	r := NewREPL(config.Default(), nil, 0)
	in := strings.NewReader("1 + \"x\"\n2 + 2\n")
	var out, errOut bytes.Buffer
	require.NoError(t, r.Run(in, &out, &errOut))
	require.Contains(t, out.String(), "4")
	require.NotEmpty(t, errOut.String())
}

func TestREPLNoColorWithoutTTY(t *testing.T) {
	r := NewREPL(config.Default(), nil, 0)
	require.False(t, r.useColor)
}

func TestREPLPersistsAndResumesAliases(t *testing.T) {
	reg, err := store.Open("")
	require.NoError(t, err)
	defer reg.Close()

	first := NewREPL(config.Default(), reg, 0)
	var out, errOut bytes.Buffer
	require.NoError(t, first.Run(strings.NewReader("type Id = Int\n"), &out, &errOut))
	require.Empty(t, errOut.String())
	session := first.SessionID()
	require.NotEmpty(t, session)

	second := NewREPL(config.Default(), reg, 0)
	second.Resume(session)
	var out2, errOut2 bytes.Buffer
	require.NoError(t, second.Run(strings.NewReader("checktype(1, Id)\n"), &out2, &errOut2))
	require.Empty(t, errOut2.String())
	require.Contains(t, out2.String(), "true")
}
