package accounts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxaudit/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{Code: "111", Name: "Tiền mặt", Type: model.AccountTypeAsset},
		{Code: "3331", Name: "Thuế GTGT phải nộp", Type: model.AccountTypeLiability},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	bad := [][]string{
		{"", "Tiền mặt", "asset"},
		{"11a", "Tiền mặt", "asset"},
		{"111", "Tiền mặt"},
	}
	for _, rec := range bad {
		_, err := UnmarshalAccount(rec)
		assert.Error(t, err, "record %v", rec)
	}
}

func TestReadAccounts_WrongFieldCount(t *testing.T) {
	_, err := ReadAccounts(strings.NewReader(Header + "\n111,Tiền mặt\n"))
	assert.Error(t, err)
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.Len(t, chart, 30)
	assert.Equal(t, "111", chart[0].Code)
	assert.Equal(t, "911", chart[len(chart)-1].Code)

	seen := make(map[string]bool)
	for _, acct := range chart {
		assert.False(t, seen[acct.Code], "duplicate account %s", acct.Code)
		seen[acct.Code] = true
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.Code)
		assert.NotEmpty(t, acct.Type, "account %s missing type", acct.Code)
	}
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart()

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, chart))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("testdata/chart.csv")
	require.NoError(t, err)
	defer f.Close()

	accounts, err := ReadAccounts(f)
	require.NoError(t, err)
	require.Len(t, accounts, 6)
	assert.Equal(t, "3331", accounts[3].Code)
	assert.Equal(t, model.AccountTypeClosing, accounts[5].Type)
}
