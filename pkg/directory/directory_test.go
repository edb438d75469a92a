package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticResolver(t *testing.T) {
	resolver := NewStaticResolver(map[string][]Approver{
		"engineer": {
			{Identity: "team-lead", Role: "manager"},
			{Identity: "sec-officer", Role: "security"},
		},
		"default": {
			{Identity: "governance-admin", Role: "administrator"},
		},
	})

	t.Run("explicit chain", func(t *testing.T) {
		chain, err := resolver.ApproversFor("engineer")
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, "team-lead", chain[0].Identity)
		assert.Equal(t, "sec-officer", chain[1].Identity)
	})

	t.Run("unknown role falls back to default", func(t *testing.T) {
		chain, err := resolver.ApproversFor("contractor")
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.Equal(t, "governance-admin", chain[0].Identity)
	})

	t.Run("no chain and no default", func(t *testing.T) {
		empty := NewStaticResolver(map[string][]Approver{})
		_, err := empty.ApproversFor("contractor")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no approver chain configured for role "contractor"`)
	})
}

func TestResolverFunc(t *testing.T) {
	var asked string
	resolver := ResolverFunc(func(role string) ([]Approver, error) {
		asked = role
		return []Approver{{Identity: "alice", Role: "manager"}}, nil
	})

	chain, err := resolver.ApproversFor("engineer")
	require.NoError(t, err)
	assert.Equal(t, "engineer", asked)
	assert.Equal(t, "alice", chain[0].Identity)
}

func TestLoadStaticResolver(t *testing.T) {
	t.Run("loads chains from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chains.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
chains:
  engineer:
    - identity: team-lead
      role: manager
    - identity: sec-officer
      role: security
  default:
    - identity: governance-admin
      role: administrator
`), 0o644))

		resolver, err := LoadStaticResolver(path)
		require.NoError(t, err)

		chain, err := resolver.ApproversFor("engineer")
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, "manager", chain[0].Role)

		chain, err = resolver.ApproversFor("unknown")
		require.NoError(t, err)
		assert.Equal(t, "governance-admin", chain[0].Identity)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadStaticResolver(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read approver chains")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chains.yml")
		require.NoError(t, os.WriteFile(path, []byte("chains: [broken\n"), 0o644))

		_, err := LoadStaticResolver(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse approver chains")
	})
}
