package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/osse101/brandish-progression/internal/domain"
)

// Codec turns profiles into stored documents: JSON, optionally zstd compressed.
// Decode accepts both forms so a store can switch compression without a migration.
type Codec struct {
	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

// NewCodec creates a codec. EncodeAll and DecodeAll are safe for concurrent use,
// so one codec serves a whole store.
func NewCodec(compress bool) (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &Codec{compress: compress, enc: enc, dec: dec}, nil
}

// Encode serializes a profile
func (c *Codec) Encode(p *domain.PlayerProfile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if !c.compress {
		return data, nil
	}
	return c.enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decode deserializes a document produced by Encode
func (c *Codec) Decode(data []byte) (*domain.PlayerProfile, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		raw, err := c.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf(ErrFmtDecode, err)
		}
		data = raw
	}

	p := &domain.PlayerProfile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf(ErrFmtDecode, err)
	}
	Normalize(p)
	return p, nil
}

// Close releases the decoder goroutines
func (c *Codec) Close() {
	_ = c.enc.Close()
	c.dec.Close()
}

// Normalize restores the empty collections a freshly created profile carries
func Normalize(p *domain.PlayerProfile) {
	if p.Inventory == nil {
		p.Inventory = []domain.ItemStack{}
	}
	if p.Materials == nil {
		p.Materials = []domain.MaterialStack{}
	}
	if p.Tools == nil {
		p.Tools = []domain.Tool{}
	}
	if p.Jobs.Membership == nil {
		p.Jobs.Membership = []domain.JobRecord{}
	}
	if p.Pity == nil {
		p.Pity = map[string]int{}
	}
}
