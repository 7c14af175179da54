package phone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	require.Equal(t, "(11) 99999-9999", Mask("11999999999"))
	require.Equal(t, "(11) 99999-9999", Mask("+(11) 99999 9999"))
	require.Equal(t, "(21) 3333-4444", Mask("2133334444"))
	require.Equal(t, "12345", Mask("12-345"))
	require.Equal(t, "", Mask("abc"))
}
