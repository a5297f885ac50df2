package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// Not parallel: changes the working directory and drives the global viper instance.
func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	projectDir := filepath.Join(dir, "contracts")
	for _, contract := range []string{"MainDAO", "SerialJustice", "JusticeToken"} {
		writeFile(t, filepath.Join(projectDir, "out", contract+".sol", contract+".json"), `{"abi":[]}`)
	}
	for _, network := range []string{"1", "5"} {
		writeFile(t, filepath.Join(projectDir, "broadcast", "DeployMainDAO.s.sol", network, "run-latest.json"),
			fmt.Sprintf(`{"transactions":[{"contractName":"MainDAO","contractAddress":"0xABC%s"}]}`, network))
		writeFile(t, filepath.Join(projectDir, "cache", "DeployMainDAO.s.sol", network, "run-latest.json"),
			fmt.Sprintf(`{"transactions":[{"rpc":"https://rpc-%s.example"}]}`, network))
	}

	// project-dir is overridden by the flag; the other keys come from the file.
	writeFile(t, filepath.Join(dir, "exporter.yaml"), `
export:
  project-dir: "does-not-exist"
  export-dir: "../env"
  manifest: true
log:
  level: "error"
`)

	var out bytes.Buffer
	rootCmd.SetOut(&out)

	rootCmd.SetArgs([]string{"--project-dir", projectDir})
	require.NoError(t, rootCmd.Execute())

	exportDir := filepath.Join(dir, "env")
	require.Equal(t, "Exporting to ../env\n", out.String())
	require.FileExists(t, filepath.Join(exportDir, "config.json"))
	require.FileExists(t, filepath.Join(exportDir, "manifest.yaml"))
	for _, contract := range []string{"MainDAO", "SerialJustice", "JusticeToken"} {
		require.FileExists(t, filepath.Join(exportDir, "abi", contract+".json"))
	}

	content, err := os.ReadFile(filepath.Join(exportDir, "config.json"))
	require.NoError(t, err)
	require.Contains(t, string(content), `"rpc_url": "https://rpc-5.example"`)

	out.Reset()
	rootCmd.SetArgs([]string{"networks", "--project-dir", projectDir})
	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "1\n5\n", out.String())

	rootCmd.SetArgs([]string{"unexpected-arg", "--project-dir", projectDir})
	require.Error(t, rootCmd.Execute())
}
