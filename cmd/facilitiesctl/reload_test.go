package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilities/internal/reload"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("COLLECTOR_URL", "")
	t.Setenv("FACILITIES_CONFIG_FILE", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestPushCommandPrintsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":[
		{"id":"vha_A","attributes":{"address":{"physical":{"state":"FL","zip":"32803"}}}},
		{"id":"notvalid"}
	]}`), 0o600))

	out, err := executeCmd(t, "push", "--file", path)
	require.NoError(t, err)

	var report reload.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"vha_A"}, report.FacilitiesCreated)
	assert.Equal(t, []reload.Problem{{FacilityID: "notvalid", Description: "Cannot parse ID"}}, report.Problems)
}

func TestPushCommandRequiresFile(t *testing.T) {
	_, err := executeCmd(t, "push")
	assert.Error(t, err)
}

func TestPushCommandRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":`), 0o600))

	_, err := executeCmd(t, "push", "--file", path)
	assert.Error(t, err)
}

func TestReloadCommandFailsWithoutCollector(t *testing.T) {
	out, err := executeCmd(t, "reload")
	assert.Error(t, err)
	assert.Empty(t, out, "no report when collection fails")
}
