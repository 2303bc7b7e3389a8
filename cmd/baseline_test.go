package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetBaselineCmd_Exists verifies getBaselineCmd returns
// a valid command.
func TestGetBaselineCmd_Exists(t *testing.T) {
	cmd := getBaselineCmd()
	require.NotNil(t, cmd, "Baseline command should exist")
	assert.Equal(t, "baseline", cmd.Use,
		"Command name should be baseline")
}

// TestGetBaselineCmd_ShortDescription verifies short
// description.
func TestGetBaselineCmd_ShortDescription(t *testing.T) {
	cmd := getBaselineCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "baseline",
		"Short description should mention baseline")
}

// TestGetBaselineCmd_HasRunE verifies run function is set.
func TestGetBaselineCmd_HasRunE(t *testing.T) {
	cmd := getBaselineCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetBaselineCmd_Flags verifies baseline flags exist
// with empty defaults, so config values win when unset.
func TestGetBaselineCmd_Flags(t *testing.T) {
	cmd := getBaselineCmd()

	versionFlag := cmd.Flags().Lookup("baseline-version")
	require.NotNil(t, versionFlag,
		"--baseline-version flag should exist")
	assert.Equal(t, "", versionFlag.DefValue,
		"Default should be empty, config supplies the value")

	descFlag := cmd.Flags().Lookup("baseline-description")
	require.NotNil(t, descFlag,
		"--baseline-description flag should exist")
	assert.Equal(t, "", descFlag.DefValue,
		"Default should be empty, config supplies the value")
}

// TestGetBaselineCmd_HelpText verifies help text content.
func TestGetBaselineCmd_HelpText(t *testing.T) {
	cmd := getBaselineCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "baseline",
		"Help should mention baseline")
	assert.Contains(t, helpText, "--baseline-version",
		"Help should mention --baseline-version flag")
	assert.Contains(t, helpText, "Examples:",
		"Help should include examples")
	assert.Contains(t, helpText, "migward baseline",
		"Should show basic example")
}

// TestGetBaselineCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetBaselineCmd_IndependentInstances(t *testing.T) {
	cmd1 := getBaselineCmd()
	cmd2 := getBaselineCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")
}
