package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"convert", "extract", "countries"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "pmsconv", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestConvertCommand_Flags(t *testing.T) {
	flag := convertCmd.Flags().Lookup("output")
	require.NotNil(t, flag, "convert command should have --output flag")
	assert.Equal(t, "o", flag.Shorthand)
}

func TestExtractCommand_Flags(t *testing.T) {
	flag := extractCmd.Flags().Lookup("output")
	require.NotNil(t, flag, "extract command should have --output flag")
}

func TestWarnUnknownCountry(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(prev)

	warnUnknownCountry("AE")
	assert.Zero(t, logs.Len(), "known codes must not warn")

	warnUnknownCountry("ZZ")
	require.Equal(t, 1, logs.Len(), "unknown codes must warn about the fallback")
	entry := logs.All()[0]
	assert.Equal(t, "ZZ", entry.ContextMap()["country"])
	assert.Equal(t, "AE", entry.ContextMap()["fallback"])
}

func TestConvertCommand_RequiresArgs(t *testing.T) {
	err := convertCmd.Args(convertCmd, nil)
	require.Error(t, err, "convert should reject empty args")

	err = convertCmd.Args(convertCmd, []string{"invoices.zip"})
	require.NoError(t, err)
}
