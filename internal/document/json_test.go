package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJSON_KeepsOrder(t *testing.T) {
	r := NewRecord()
	r.Set("maTKhai", "842")
	r.InsertOrAppend("ct07", "A")
	r.InsertOrAppend("ct07", "B")
	r.Set("ct01", "10")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"maTKhai":"842","ct07":["A","B"],"ct01":"10"}`, string(data))
}

func TestRecordJSON_Empty(t *testing.T) {
	data, err := json.Marshal(NewRecord())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
