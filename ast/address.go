package ast

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
)

const (
	addressLen  = 58
	checksumLen = 4
	keyLen      = 32
)

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// decodeAddress checks the checksummed base32 form of an address and
// returns the 32-byte public key it encodes. The raw key is the
// canonical form used when pooling address literals.
func decodeAddress(address string) ([]byte, error) {
	if len(address) != addressLen {
		return nil, errors.WithDetailf(ir.ErrInput, "address length must be %d, got %d", addressLen, len(address))
	}
	decoded, err := base32NoPad.DecodeString(address)
	if err != nil {
		return nil, errors.Wrapf(errors.WithDetailf(ir.ErrInput, "address is not valid base32"), "decoding %s", address)
	}
	if len(decoded) != keyLen+checksumLen {
		return nil, errors.WithDetailf(ir.ErrInput, "address decodes to %d bytes, want %d", len(decoded), keyLen+checksumLen)
	}
	key := decoded[:keyLen]
	sum := sha512.Sum512_256(key)
	if !bytes.Equal(sum[len(sum)-checksumLen:], decoded[keyLen:]) {
		return nil, errors.WithDetailf(ir.ErrInput, "address checksum mismatch")
	}
	return key, nil
}
