package profile

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
)

var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func TestCodec(t *testing.T) {
	plain, err := NewCodec(false)
	require.NoError(t, err)
	defer plain.Close()
	compressed, err := NewCodec(true)
	require.NoError(t, err)
	defer compressed.Close()

	p := domain.NewPlayerProfile("p1", "g1", testNow)
	p.Currency.Coins = 42
	p.Materials = append(p.Materials, domain.MaterialStack{MaterialID: "stone", Quantity: 3, Quality: 50})

	plainData, err := plain.Encode(p)
	require.NoError(t, err)
	zData, err := compressed.Encode(p)
	require.NoError(t, err)

	assert.False(t, bytes.HasPrefix(plainData, zstdMagic))
	assert.True(t, bytes.HasPrefix(zData, zstdMagic))

	for name, data := range map[string][]byte{"plain": plainData, "zstd": zData} {
		t.Run(name, func(t *testing.T) {
			// Either codec reads both forms
			for _, c := range []*Codec{plain, compressed} {
				got, err := c.Decode(data)
				require.NoError(t, err)
				assert.Equal(t, int64(42), got.Currency.Coins)
				assert.Equal(t, p.Materials, got.Materials)
				assert.True(t, got.CreatedAt.Equal(testNow))
			}
		})
	}
}

func TestCodec_DecodeRestoresCollections(t *testing.T) {
	c, err := NewCodec(false)
	require.NoError(t, err)
	defer c.Close()

	p, err := c.Decode([]byte(`{"player_id":"p1","guild_id":"g1","level":1}`))

	require.NoError(t, err)
	assert.NotNil(t, p.Inventory)
	assert.NotNil(t, p.Materials)
	assert.NotNil(t, p.Tools)
	assert.NotNil(t, p.Jobs.Membership)
	assert.NotNil(t, p.Pity)
}

func TestCodec_Corrupt(t *testing.T) {
	c, err := NewCodec(true)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = c.Decode(append(bytes.Clone(zstdMagic), 0x00, 0x01))
	assert.Error(t, err)
}
