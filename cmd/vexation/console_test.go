// cmd/vexation/console_test.go
package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jason-s-yu/vexation/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestConsoleComputerOnly(t *testing.T) {
	var out bytes.Buffer
	err := playConsole(strings.NewReader(""), &out, engine.DefaultRules(), 7, false, discard())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "wins after")
}

func TestConsoleHumanQuits(t *testing.T) {
	rules := engine.DefaultRules()
	rules.Human[engine.Red] = true
	rules.FirstPlayer = engine.Red

	var out bytes.Buffer
	in := strings.NewReader("bogus\nmarble 99\nmove 0\nquit\n")
	err := playConsole(in, &out, rules, 11, true, discard())
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, `unknown command "bogus"`)
	assert.Contains(t, s, "unknown marble")
	assert.Contains(t, s, `"type":"game_start"`)
	assert.Contains(t, s, "red> ")
	assert.Contains(t, s, "bye")
}

func TestConsoleEndOfInput(t *testing.T) {
	rules := engine.DefaultRules()
	rules.Human = [engine.NumPlayers]bool{true, true, true, true}

	var out bytes.Buffer
	err := playConsole(strings.NewReader("done\n"), &out, rules, 3, false, discard())
	assert.NoError(t, err)
}
