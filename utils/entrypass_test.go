package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryPassRoundTrip(t *testing.T) {
	content, err := EntryPassContent(42)
	assert.NoError(t, err)
	assert.Equal(t, `{"booking_id":42,"type":"check-in"}`, content)

	payload, err := DecodeEntryPass(content)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), payload.BookingID)
	assert.Equal(t, EntryPassType, payload.Type)
}

func TestEntryPassDeterministic(t *testing.T) {
	a, err := EntryPassPNG(7)
	assert.NoError(t, err)
	b, err := EntryPassPNG(7)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "same booking id must render identical bytes")

	c, err := EntryPassPNG(8)
	assert.NoError(t, err)
	assert.False(t, bytes.Equal(a, c), "different booking ids must differ")
}

func TestEntryPassPNGHeader(t *testing.T) {
	png, err := EntryPassPNG(1)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestEntryPassDataURI(t *testing.T) {
	uri, err := EntryPassDataURI(3)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestDecodeEntryPassRejectsBadPayloads(t *testing.T) {
	_, err := DecodeEntryPass(`{"booking_id":1,"type":"check-out"}`)
	assert.Error(t, err)

	_, err = DecodeEntryPass(`{"type":"check-in"}`)
	assert.Error(t, err)

	_, err = DecodeEntryPass(`not json`)
	assert.Error(t, err)
}
