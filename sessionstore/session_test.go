package sessionstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tcpexport "tcp-export"
)

func TestCreateSessionLayout(t *testing.T) {
	m := NewManager(t.TempDir())
	s, err := m.Create("2024-03-15", "Lyon", "tests du matin")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15_Lyon", s.Name)
	assert.NotEmpty(t, s.CreatedAt)

	for _, dir := range []string{
		m.Dir(s.Name),
		m.ProfilesDir(s.Name),
		m.XMLDir(s.Name),
		m.OutputDir(s.Name),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
	_, err = os.Stat(filepath.Join(m.Dir(s.Name), "session.json"))
	assert.NoError(t, err)
}

func TestCreateSessionSanitizesLocation(t *testing.T) {
	m := NewManager(t.TempDir())
	s, err := m.Create("2024-03-15", "Aix en Provence", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15_Aix_en_Provence", s.Name)
}

func TestCreateDuplicateSessionFails(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Create("2024-03-15", "Lyon", "")
	require.NoError(t, err)
	_, err = m.Create("2024-03-15", "Lyon", "")
	assert.Error(t, err)
}

func TestOpenAndList(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Create("2024-03-15", "Lyon", "")
	require.NoError(t, err)
	_, err = m.Create("2024-04-01", "Paris", "")
	require.NoError(t, err)

	s, err := m.Open("2024-03-15_Lyon")
	require.NoError(t, err)
	assert.Equal(t, "Lyon", s.Location)

	sessions, err := m.List()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
}

func TestListWithoutSessionsTree(t *testing.T) {
	m := NewManager(t.TempDir())
	sessions, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestProfileRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())
	s, err := m.Create("2024-03-15", "Lyon", "")
	require.NoError(t, err)

	input := tcpexport.ManualInput{Email: "jane@example.com"}
	input.Identity.LastName = "Doe"
	_, err = m.SaveProfile(s.Name, "Jane Doe", input)
	require.NoError(t, err)

	names, err := m.ListProfiles(s.Name)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane_Doe"}, names)

	loaded, err := m.LoadProfile(s.Name, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", loaded.Email)
	assert.Equal(t, "Doe", loaded.Identity.LastName)
}

func TestMatchesLifecycle(t *testing.T) {
	m := NewManager(t.TempDir())
	s, err := m.Create("2024-03-15", "Lyon", "")
	require.NoError(t, err)

	matches, err := m.Matches(s.Name)
	require.NoError(t, err)
	assert.Empty(t, matches)

	require.NoError(t, m.AddMatch(s.Name, "Jane_Doe", "TCP__DOE_Jane_2024.03.15_09.30.45_.xml"))
	matches, err = m.Matches(s.Name)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].Exported)

	require.NoError(t, m.MarkExported(s.Name, "Jane_Doe"))
	matches, err = m.Matches(s.Name)
	require.NoError(t, err)
	assert.True(t, matches[0].Exported)

	// Re-matching replaces the pairing and resets the exported flag.
	require.NoError(t, m.AddMatch(s.Name, "Jane_Doe", "TCP__DOE_Jane_2024.03.15_10.00.00_.xml"))
	matches, err = m.Matches(s.Name)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "TCP__DOE_Jane_2024.03.15_10.00.00_.xml", matches[0].XMLFilename)
	assert.False(t, matches[0].Exported)
}

func TestMarkExportedUnknownProfile(t *testing.T) {
	m := NewManager(t.TempDir())
	s, err := m.Create("2024-03-15", "Lyon", "")
	require.NoError(t, err)
	assert.Error(t, m.MarkExported(s.Name, "nobody"))
}
