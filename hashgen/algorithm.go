package hashgen

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Algorithm identifies a registered digest.
//
// The numeric value is persisted in filter state headers. Values must not be
// renumbered.
type Algorithm uint8

const (
	AlgorithmUnknown Algorithm = iota
	MD5
	SHA1
	SHA256
	XXH64
	Murmur3x128
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = MD5

type digestInfo struct {
	name    string
	size    int
	newHash func() hash.Hash
}

var digests = map[Algorithm]digestInfo{
	MD5:         {name: "MD5", size: md5.Size, newHash: md5.New},
	SHA1:        {name: "SHA-1", size: sha1.Size, newHash: sha1.New},
	SHA256:      {name: "SHA-256", size: sha256.Size, newHash: sha256.New},
	XXH64:       {name: "XXH64", size: 8, newHash: func() hash.Hash { return xxhash.New() }},
	Murmur3x128: {name: "MURMUR3-128", size: 16, newHash: func() hash.Hash { return murmur3.New128() }},
}

func (a Algorithm) String() string {
	if d, ok := digests[a]; ok {
		return d.name
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// Available reports whether a is a registered digest.
func (a Algorithm) Available() bool {
	_, ok := digests[a]
	return ok
}

// DigestSize returns the digest length in bytes, or 0 for unregistered
// algorithms.
func (a Algorithm) DigestSize() int {
	return digests[a].size
}

// Lookup resolves a digest name. Matching ignores case and '-', so "sha256",
// "SHA-256" and "Sha-256" are equivalent.
func Lookup(name string) (Algorithm, error) {
	want := canonicalName(name)
	for a, d := range digests {
		if canonicalName(d.name) == want {
			return a, nil
		}
	}
	return AlgorithmUnknown, fmt.Errorf("%w: %q", ErrDigestUnavailable, name)
}

// Algorithms returns the registered algorithms in id order.
func Algorithms() []Algorithm {
	algs := make([]Algorithm, 0, len(digests))
	for a := range digests {
		algs = append(algs, a)
	}
	sort.Slice(algs, func(i, j int) bool { return algs[i] < algs[j] })
	return algs
}

func canonicalName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
}
