package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/listfilter/internal/config"
	"github.com/ruminaider/listfilter/internal/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customersYAML = `title: Customers
path: /customers/
columns:
  - name: name
    label: Name
  - name: status
filters:
  - kind: choices
    title: Status
    field: status
    choices:
      - {code: A, label: Active}
      - {code: B, label: Blocked}
      - {code: C, label: Closed}
  - kind: range
    title: Age
    gte: age_min
    lte: age_max
rows:
  - {name: Ann, status: A, age_min: 20, age_max: 30}
  - {name: Bob, status: B, age_min: 40, age_max: 50}
  - {name: Cid, status: null, age_min: 25, age_max: 35}
  - {name: Dee, status: C}
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customersYAML), 0o644))
	return path
}

func loadTestDataset(t *testing.T) config.Dataset {
	t.Helper()
	ds, err := loadDataset([]string{writeDataset(t)})
	require.NoError(t, err)
	return ds
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "listfilter "+version+"\n", out)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"partial", []string{"encode", "a", "c", "--total", "3", "--lookup", "status__in"}, "?status__in=a,c\n"},
		{"partial with base", []string{"encode", "a", "--total", "3", "--lookup", "s", "--base", "?x=1"}, "?x=1&s=a\n"},
		{"all", []string{"encode", "a", "b", "--total", "2", "--lookup", "s", "--base", "?x=1"}, "?x=1\n"},
		{"none", []string{"encode", "--total", "2", "--lookup", "s", "--none", "?s__isnull=True"}, "?s__isnull=True\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encodeBase, encodeNone, encodeFill = "?", "?", false
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEncode_Fill(t *testing.T) {
	encodeBase, encodeNone = "?", "?"
	out, err := run(t, "encode", "a", "--total", "3", "--lookup", "s", "--fill")
	require.NoError(t, err)
	assert.Equal(t, "partial\t?s=a\n", out)
	encodeFill = false
}

func TestEncode_TotalTooSmall(t *testing.T) {
	_, err := run(t, "encode", "a", "b", "--total", "1", "--lookup", "s")
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "query", path, "--query", "?status__in=A,C", "--output", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Dee")
	assert.NotContains(t, out, "Bob")
	assert.Contains(t, out, "2/4 rows")
}

func TestQuery_YAML(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "query", path, "--query", "?status__isnull=True", "--output", "yaml")
	require.NoError(t, err)

	ds, err := config.Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Cid", ds.Rows[0]["name"])
}

func TestQuery_BadQuery(t *testing.T) {
	path := writeDataset(t)
	_, err := run(t, "query", path, "--query", "?age_min__range__gte=old", "--output", "table")
	assert.ErrorIs(t, err, filters.ErrIncorrectLookup)
}

func TestView_FallsBackWithoutTerminal(t *testing.T) {
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	path := writeDataset(t)
	out, err := run(t, "view", path, "--query", "?status__in=B")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "1/4 rows")
}

func TestRoot_AcceptsViewFlags(t *testing.T) {
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	path := writeDataset(t)
	out, err := run(t, path, "--query", "?status__in=A,C", "--variant", "click", "--no-none")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")
	assert.NotContains(t, out, "Bob")
	assert.Contains(t, out, "2/4 rows")
	viewNoNone = false
}

func TestLoadDataset_Missing(t *testing.T) {
	_, err := loadDataset([]string{filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestFindFilter(t *testing.T) {
	ds := loadTestDataset(t)

	c, err := findFilter[*filters.ChoicesFilter](ds, "", "status", "choices")
	require.NoError(t, err)
	assert.Equal(t, "status__in", c.LookupIn)

	_, err = findFilter[*filters.RangeFilter](ds, "", "status", "range")
	assert.EqualError(t, err, `no range filter named "status"`)

	r, err := findFilter[*filters.RangeFilter](ds, "?age_min__range__gte=5", "age_min", "range")
	require.NoError(t, err)
	gte, _ := r.Bounds()
	assert.Equal(t, "5", gte)
}

func TestPickTarget(t *testing.T) {
	ds := loadTestDataset(t)
	f, err := findFilter[*filters.ChoicesFilter](ds, "?o=name", "status", "choices")
	require.NoError(t, err)

	target, ok := pickTarget(f, ds.Path, []string{"C", "A", "Z"}, true)
	require.True(t, ok)
	assert.Equal(t, "/customers/?o=name&status__in=A,C", target)

	target, ok = pickTarget(f, ds.Path, []string{"A", "B", "C"}, true)
	require.True(t, ok)
	assert.Equal(t, "/customers/?o=name", target)

	target, ok = pickTarget(f, ds.Path, nil, true)
	require.True(t, ok)
	assert.Equal(t, "/customers/?o=name&status__isnull=True", target)

	_, ok = pickTarget(f, ds.Path, nil, false)
	assert.False(t, ok)
}

func TestRange_Flags(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "range", path, "--filter", "age_min", "--query", "?o=name", "--gte", "21", "--lte", "60")
	require.NoError(t, err)
	assert.Equal(t, "/customers/?o=name&age_min__range__gte=21&age_max__range__lte=60\n", out)
}

func TestRange_Reset(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "range", path, "--filter", "age_min", "--query", "?o=name&age_min__range__gte=3", "--reset")
	require.NoError(t, err)
	assert.Equal(t, "/customers/?o=name\n", out)
	rangeReset = false
}

func TestValidateNumber(t *testing.T) {
	assert.NoError(t, validateNumber(""))
	assert.NoError(t, validateNumber(" 4.5 "))
	assert.Error(t, validateNumber("old"))
}
