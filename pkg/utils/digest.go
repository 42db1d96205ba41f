package utils

import (
	"encoding/hex"
	"encoding/json"

	"github.com/gowebpki/jcs"
	"github.com/modern-go/reflect2"
	"github.com/zeebo/blake3"
)

// SpecDigest provides the BLAKE3 digest of the canonical JSON
// form of a specification. Raw bytes and strings are digested as they are.
// A nil value has the empty digest.
func SpecDigest(spec interface{}) (string, error) {
	if reflect2.IsNil(spec) {
		return "", nil
	}
	var data []byte
	switch b := spec.(type) {
	case []byte:
		data = b
	case string:
		data = []byte(b)
	default:
		raw, err := json.Marshal(spec)
		if err != nil {
			return "", err
		}
		data, err = jcs.Transform(raw)
		if err != nil {
			return "", err
		}
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// MustSpecDigest is SpecDigest for specifications known to be
// serializable.
func MustSpecDigest(spec interface{}) string {
	d, err := SpecDigest(spec)
	if err != nil {
		panic(err)
	}
	return d
}
