package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command in an empty directory so no local
// gopipe.ini or .env is picked up
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	// a nil slice would make cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs([]string{})
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestBanner(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Go Pipe Flow Calculator")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gopipe v")
}

func TestDarcyCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"darcy", "headloss", "-L", "100", "-D", "0.1", "-V", "2", "-f", "0.02"}, "Pressure Drop (Head Loss): 4.0775 m"},
		{[]string{"darcy", "velocity", "-L", "100", "-D", "0.1", "--headloss", "5", "-f", "0.02"}, "Flow Velocity: 2.2147 m/s"},
		{[]string{"darcy", "diameter", "-L", "100", "-V", "2", "--headloss", "5", "-f", "0.02"}, "Pipe Diameter: 0.0815 m"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Contains(t, out, tt.want)
	}
}

func TestDarcyDomainError(t *testing.T) {
	_, err := run(t, "darcy", "diameter", "-L", "100", "-V", "2", "--headloss", "0", "-f", "0.02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "head loss")
}

func TestFrictionCommand(t *testing.T) {
	out, err := run(t, "friction", "--reynolds", "100000", "--roughness", "0.001", "--diagram", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Friction Factor f = 0.0221")
	assert.Contains(t, out, "Converged")
	assert.Contains(t, out, "FRICTION FACTOR")

	_, err = run(t, "friction", "--reynolds", "0", "--roughness", "0.001", "--diagram=false", "--strict=false")
	assert.Error(t, err)
}

func TestFlowCommandWithReports(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "flow.xlsx")
	png := filepath.Join(dir, "conv.png")

	out, err := run(t, "flow", "-L", "100", "-D", "0.1", "--headloss", "5", "-e", "0.001", "--viscosity", "1e-6",
		"--report", xlsx, "-o", png, "--sketch")
	require.NoError(t, err)
	assert.Contains(t, out, "Flow Velocity (V): 2.164")
	assert.Contains(t, out, "Flow Rate (Q):")
	assert.Contains(t, out, "PIPE RUN")

	for _, f := range []string{xlsx, png} {
		_, err := os.Stat(f)
		assert.NoError(t, err, f)
	}
}

func TestFlowWithoutDrivingHead(t *testing.T) {
	out, err := run(t, "flow", "-L", "100", "-D", "0.1", "--headloss", "0", "-e", "0.001", "--viscosity", "1e-6",
		"--report", "", "-o", "", "--sketch=false", "--diagram=false", "--strict")
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Friction Factor (f):") || strings.Contains(line, "Reynolds Number (Re):") {
			assert.Contains(t, line, "n/a (no driving head)")
		}
	}
	assert.Contains(t, out, "Flow Velocity (V): 0.0000 m/s")
}

func TestFlowStrictNonConvergence(t *testing.T) {
	dir := t.TempDir()
	ini := filepath.Join(dir, "tight.ini")
	require.NoError(t, os.WriteFile(ini, []byte("[solver]\nMaxIterations = 2\n"), 0644))

	_, err := run(t, "--config", ini, "flow", "-L", "100", "-D", "0.1", "--headloss", "5", "-e", "0.001",
		"--viscosity", "1e-6", "--report", "", "-o", "", "--sketch=false", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not converge")
}

func TestMoodyCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "moody.svg")
	out, err := run(t, "--config", "", "moody", "-o", file, "--points", "8", "--roughness", "0,0.001,0.01")
	require.NoError(t, err)
	assert.Contains(t, out, "Curves:")

	_, err = os.Stat(file)
	assert.NoError(t, err)
}
