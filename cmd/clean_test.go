package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCleanCmd_Exists verifies getCleanCmd returns
// a valid command.
func TestGetCleanCmd_Exists(t *testing.T) {
	cmd := getCleanCmd()
	require.NotNil(t, cmd, "Clean command should exist")
	assert.Equal(t, "clean", cmd.Use,
		"Command name should be clean")
}

// TestGetCleanCmd_ShortDescription verifies short
// description.
func TestGetCleanCmd_ShortDescription(t *testing.T) {
	cmd := getCleanCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "schemas",
		"Short description should mention schemas")
}

// TestGetCleanCmd_LongDescription verifies long
// description.
func TestGetCleanCmd_LongDescription(t *testing.T) {
	cmd := getCleanCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "default",
		"Long description should mention disabled default")
	assert.Contains(t, cmd.Long, "undo",
		"Long description should warn there is no undo")
}

// TestGetCleanCmd_HasRunE verifies run function is set.
func TestGetCleanCmd_HasRunE(t *testing.T) {
	cmd := getCleanCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetCleanCmd_ForceFlag verifies --force flag exists.
func TestGetCleanCmd_ForceFlag(t *testing.T) {
	cmd := getCleanCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag,
		"--force flag should exist")

	assert.Equal(t, "f", forceFlag.Shorthand,
		"Short form should be -f")
	assert.Equal(t, "false", forceFlag.DefValue,
		"Default should be false")
	assert.Contains(t, forceFlag.Usage, "confirmation",
		"Usage should mention confirmation")
}

// TestGetCleanCmd_HelpText verifies help text content.
func TestGetCleanCmd_HelpText(t *testing.T) {
	cmd := getCleanCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "clean",
		"Help should mention clean")
	assert.Contains(t, helpText, "--force",
		"Help should mention --force flag")
	assert.Contains(t, helpText, "-f",
		"Help should mention -f short form")
	assert.Contains(t, helpText, "Examples:",
		"Help should include examples")
}

// TestGetCleanCmd_Examples verifies examples in help.
func TestGetCleanCmd_Examples(t *testing.T) {
	cmd := getCleanCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "migward clean",
		"Should show basic example")
	assert.Contains(t, helpText, "migward clean --force",
		"Should show force example")
	assert.Contains(t, helpText, "migward clean -f",
		"Should show short form example")
}

// TestGetCleanCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetCleanCmd_IndependentInstances(t *testing.T) {
	cmd1 := getCleanCmd()
	cmd2 := getCleanCmd()

	// Should be different instances
	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")

	// Modifying one shouldn't affect the other
	cmd1.Short = "test1"
	cmd2.Short = "test2"

	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}
