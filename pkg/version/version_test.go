package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionParse(t *testing.T) {
	v, err := Parse("Version: master @Revision: some-revision-goes-here")
	require.NoError(t, err)

	require.Equal(t, "master", v.Branch)
	require.Equal(t, "some-revision-goes-here", v.Revision)
	require.False(t, v.Dirty)

	v, err = Parse("Version: @Revision: some-revision-goes-here")
	require.NoError(t, err)

	require.Equal(t, "", v.Branch)
	require.Equal(t, "some-revision-goes-here", v.Revision)

	v, err = Parse("Version: master @Revision: some-revision-goes-here (dirty-repo)")
	require.NoError(t, err)

	require.Equal(t, "master", v.Branch)
	require.Equal(t, "some-revision-goes-here", v.Revision)
	require.True(t, v.Dirty)

	_, err = Parse("invalid")
	require.Error(t, err)
}

func TestVersionRoundTrip(t *testing.T) {
	v := Version{Branch: "main", Revision: "0123456789abcdef", Dirty: true}

	parsed, err := Parse(v.String())
	require.NoError(t, err)
	require.Equal(t, v, parsed)

	require.Equal(t, "main@0123456(D)", v.Short())
	require.Equal(t, "dev@abc", Version{Branch: "dev", Revision: "abc"}.Short())
}
