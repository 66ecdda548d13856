package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRoundTrip(t *testing.T) {
	e := New(BlockCreated, map[string]interface{}{"page_id": int64(7), "block_id": int64(3)})
	require.NotEmpty(t, e.Id)

	b, err := Marshal(e)
	require.NoError(t, err)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, e.Id, got.Id)
	assert.Equal(t, BlockCreated, got.Type)
	assert.True(t, e.OccurredAt.Equal(got.OccurredAt))

	id, ok := Int64(got.Data, "page_id")
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestUnmarshalRejectsUntyped(t *testing.T) {
	_, err := Unmarshal([]byte(`{"data":{}}`))
	assert.Error(t, err)
	_, err = Unmarshal([]byte(`nope`))
	assert.Error(t, err)
}

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{"workspace"}, Topics(New(MemoCreated, nil)))
	assert.Equal(t, []string{"workspace", "page:4"}, Topics(New(PageUpdated, map[string]interface{}{"page_id": 4})))
}
