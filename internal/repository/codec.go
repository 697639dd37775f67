package repository

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Envelope layout: [4 bytes magic][32 bytes blake2b-256 of payload][gob payload]
const blobMagic = "ATL1"

const headerLen = len(blobMagic) + blake2b.Size256

func encodeBlob(v any) ([]byte, error) {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(v); err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(payload.Bytes())

	out := make([]byte, 0, headerLen+payload.Len())
	out = append(out, blobMagic...)
	out = append(out, sum[:]...)
	out = append(out, payload.Bytes()...)
	return out, nil
}

func decodeBlob(data []byte, v any) error {
	if len(data) < headerLen || string(data[:len(blobMagic)]) != blobMagic {
		return fmt.Errorf("%w: bad header", ErrPersistenceCorrupt)
	}
	payload := data[headerLen:]
	sum := blake2b.Sum256(payload)
	if !bytes.Equal(sum[:], data[len(blobMagic):headerLen]) {
		return fmt.Errorf("%w: checksum mismatch", ErrPersistenceCorrupt)
	}
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
	}
	return nil
}
