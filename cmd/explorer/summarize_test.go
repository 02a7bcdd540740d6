package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	domsummary "github.com/kailas-cloud/explorer/internal/domain/summary"
)

func TestPrintSummary(t *testing.T) {
	resp := domsummary.NewResponse("## Mars\n\n- red", []domsummary.Source{
		{Title: "NASA", URL: "https://nasa.example/mars"},
		{Title: "ESA", URL: "https://esa.example/mars"},
	}, nil)

	var buf bytes.Buffer
	printSummary(&buf, &resp)

	out := buf.String()
	assert.Contains(t, out, "## Mars\n\n- red\n")
	assert.Contains(t, out, "[1] NASA\n      https://nasa.example/mars")
	assert.Contains(t, out, "[2] ESA")
	assert.NotContains(t, out, "Images:")
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["summarize"])

	flag := summarizeCmd.Flags().Lookup("category")
	if assert.NotNil(t, flag) {
		assert.Equal(t, "Overview", flag.DefValue)
	}
}
