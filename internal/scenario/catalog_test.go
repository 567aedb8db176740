package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func find(list []Scenario, name string) *Scenario {
	for i := range list {
		if strings.EqualFold(list[i].Name, name) {
			return &list[i]
		}
	}
	return nil
}

func TestDefaultCatalogReproducesDemo(t *testing.T) {
	list := DefaultCatalog()
	require.Len(t, list, 5)

	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"Decimals", "Integers", "Zero or Greater", "Financial", "Price"}, names)

	integers := find(list, "integers")
	require.NotNil(t, integers)
	require.Equal(t, []float64{1, 2, 3, 1.1}, integers.Alternatives)
	require.Equal(t, "integer", integers.Predicate)

	price := find(list, "Price")
	require.NotNil(t, price)
	require.Equal(t, 5.0, *price.Precision)
	require.Equal(t, 2.0, *price.Scale)
}

func TestLoadWritesDefaultCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scenarios.toml")

	list, err := Load(path)
	require.NoError(t, err)
	require.Len(t, list, 5)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultCatalogTOML, string(data))
}

func TestLoadReadsExistingCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[scenario]]
name = "Percent"
alternatives = [0.5, 12]
precision = 3
`), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, []float64{0.5, 12}, list[0].Alternatives)
	require.Nil(t, list[0].Scale)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		toml string
		want string
	}{
		{"empty", ``, "no scenarios defined"},
		{"missing name", "[[scenario]]\nalternatives = [1]\n", "name is required"},
		{"duplicate", "[[scenario]]\nname = \"A\"\n[[scenario]]\nname = \"a\"\n", `duplicate name "a"`},
		{"typo predicate", "[[scenario]]\nname = \"A\"\npredicate = \"intger\"\n", `unknown predicate "intger" (did you mean "integer"?)`},
		{"typo format", "[[scenario]]\nname = \"A\"\nformat = \"finacial\"\n", `did you mean "financial"?`},
		{"unrelated syntax", "[[scenario]]\nname = \"A\"\nsyntax = \"hexadecimal-ish\"\n", `unknown syntax "hexadecimal-ish" (known: [decimal positive])`},
		{"non numeric alternative", "[[scenario]]\nname = \"A\"\nalternatives = [\"x\"]\n", "alternatives[0]"},
		{"non numeric precision", "[[scenario]]\nname = \"A\"\nprecision = \"5\"\n", "precision"},
		{"bad toml", "[[scenario]\n", "parse scenarios"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.toml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}
