package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	q := ParseQuery("  #Go tag:kafka  event  sourcing # ")
	assert.Equal(t, []string{"go", "kafka"}, q.Tags)
	assert.Equal(t, "event sourcing #", q.Text)
	assert.Equal(t, "event sourcing #", q.Needle())
}

func TestQueryNeedleFallsBackToTag(t *testing.T) {
	q := ParseQuery("#golang")
	assert.Equal(t, "", q.Text)
	assert.Equal(t, "golang", q.Needle())
	assert.False(t, q.Empty())
	assert.True(t, ParseQuery("   ").Empty())
}

func TestQueryHasTags(t *testing.T) {
	q := ParseQuery("#go #kafka")
	assert.True(t, q.HasTags([]string{"Kafka", "GO", "db"}))
	assert.False(t, q.HasTags([]string{"go"}))
	assert.True(t, ParseQuery("plain").HasTags(nil))
}
