package sessionstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolStoreAddSortsAndPersists(t *testing.T) {
	dir := t.TempDir()
	s := OpenProtocolStore(dir)

	require.True(t, s.Add("Vameval", "palier 0,5 km/h / min"))
	require.True(t, s.Add("astrand", "protocole continu"))
	assert.False(t, s.Add("Vameval", "doublon"))
	assert.False(t, s.Add("   ", "vide"))

	// Case-insensitive order.
	assert.Equal(t, []string{"astrand", "Vameval"}, s.Names())
	assert.Equal(t, "palier 0,5 km/h / min", s.Description("Vameval"))

	reloaded := OpenProtocolStore(dir)
	assert.Equal(t, []string{"astrand", "Vameval"}, reloaded.Names())
}

func TestProtocolStoreUpdateRenameDelete(t *testing.T) {
	dir := t.TempDir()
	s := OpenProtocolStore(dir)
	require.True(t, s.Add("Vameval", "v1"))

	assert.True(t, s.Update("Vameval", "v2"))
	assert.False(t, s.Update("inconnu", "x"))
	assert.Equal(t, "v2", s.Description("Vameval"))

	assert.True(t, s.Rename("Vameval", "Vameval court"))
	assert.False(t, s.Rename("inconnu", "autre"))
	assert.Equal(t, "v2", s.Description("Vameval court"))
	assert.Equal(t, "", s.Description("Vameval"))

	assert.True(t, s.Delete("Vameval court"))
	assert.False(t, s.Delete("Vameval court"))
	assert.Empty(t, s.Names())
}

func TestProtocolStoreCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "protocols.json"), []byte("{{{"), 0o644))
	s := OpenProtocolStore(dir)
	assert.Empty(t, s.Names())

	// The store stays usable and repairs the file on the next save.
	assert.True(t, s.Add("Vameval", "ok"))
	assert.Equal(t, []string{"Vameval"}, OpenProtocolStore(dir).Names())
}
