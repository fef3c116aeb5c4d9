package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsage/internal/types"
)

func TestCatalogCommand(t *testing.T) {
	out, err := runCLI(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Computer Science")
	assert.Contains(t, out, "4th Year")
}

func TestCatalogCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "catalog", "--json")
	require.NoError(t, err)

	var catalog types.CatalogResponse
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	assert.Equal(t, types.Branches, catalog.Branches)
	assert.Equal(t, types.Years, catalog.Years)
}

func TestCatalogCommand_Branch(t *testing.T) {
	out, err := runCLI(t, "catalog", "Civil", "--json")
	require.NoError(t, err)

	var opts types.BranchOptions
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, types.OptionsForBranch("Civil"), opts)

	out, err = runCLI(t, "catalog", "Civil")
	require.NoError(t, err)
	assert.Contains(t, out, "CIVIL")
}

func TestCatalogCommand_UnknownBranch(t *testing.T) {
	_, err := runCLI(t, "catalog", "Alchemy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown branch "Alchemy"`)

	_, err = runCLI(t, "catalog", "Civil", "Mechanical")
	assert.Error(t, err)
}
