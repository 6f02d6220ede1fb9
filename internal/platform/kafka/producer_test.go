package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecordCopiesKeyValueAndHeaders(t *testing.T) {
	rec := toRecord("facility-changes", Message{
		Key:     []byte("vha_A"),
		Value:   []byte(`{"change":"created"}`),
		Headers: map[string]string{"change": "created"},
	})

	assert.Equal(t, "facility-changes", rec.Topic)
	assert.Equal(t, []byte("vha_A"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "change", rec.Headers[0].Key)
	assert.Equal(t, []byte("created"), rec.Headers[0].Value)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(context.Background(), nil)
	assert.Error(t, err)
}
