package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerport-dev/ledgerport/internal/props"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import-profile.yaml")

	p := Default()
	p.AccountMap = map[string]string{"CHECKING ****1234": "Assets:Bank:Checking"}
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveFormats(t *testing.T) {
	p := &Profile{DateFormat: "d-m-y", CurrencyFormat: "comma"}

	df, err := p.ResolveDateFormat()
	require.NoError(t, err)
	assert.Equal(t, props.DateDMY, df)

	cf, err := p.ResolveCurrencyFormat()
	require.NoError(t, err)
	assert.Equal(t, props.CurrencyComma, cf)

	p.DateFormat = "y/m/d"
	_, err = p.ResolveDateFormat()
	assert.Error(t, err)

	p.CurrencyFormat = "dots"
	_, err = p.ResolveCurrencyFormat()
	assert.Error(t, err)
}

func TestResolveColumns(t *testing.T) {
	p := &Profile{Columns: []string{"Date", "Description", "Account", "Amount", "Transfer Account"}}

	cols, err := p.ResolveColumns()
	require.NoError(t, err)
	assert.Equal(t, []props.PropertyType{
		props.PropDate, props.PropDescription, props.PropAccount,
		props.PropAmount, props.PropTransferAccount,
	}, cols)

	// Transfer columns are sanitized away in multi-split mode.
	p.MultiSplit = true
	cols, err = p.ResolveColumns()
	require.NoError(t, err)
	assert.Equal(t, props.PropNone, cols[4])

	p.Columns = append(p.Columns, "Serial Number")
	_, err = p.ResolveColumns()
	assert.Error(t, err)
}
