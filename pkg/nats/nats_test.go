package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.PAGE_CREATED", Subject("PAGE_CREATED"))
}
