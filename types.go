// FILE: lixenwraith/valconfig/types.go
package config

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mr-tron/base58"
)

const (
	// KeypairLength is the decoded size of a validator identity: seed followed by public key.
	KeypairLength = ed25519.PrivateKeySize
	// PubkeyLength is the decoded size of a public key.
	PubkeyLength = ed25519.PublicKeySize
)

// Keypair is an ed25519 identity encoded as base58 of its 64 bytes.
type Keypair struct {
	key ed25519.PrivateKey
}

// ParseKeypair decodes base58 text into a keypair.
// The decoded bytes must be exactly 64 long and their public half must match the seed.
func ParseKeypair(s string) (Keypair, error) {
	raw, err := decodeBase58(s)
	if err != nil {
		return Keypair{}, err
	}
	if len(raw) != KeypairLength {
		return Keypair{}, fmt.Errorf("%w: decoded %d bytes, want %d", ErrKeyLength, len(raw), KeypairLength)
	}
	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return Keypair{}, ErrKeyMismatch
	}
	return Keypair{key: derived}, nil
}

// NewKeypair wraps an existing ed25519 private key.
func NewKeypair(key ed25519.PrivateKey) (Keypair, error) {
	if len(key) != KeypairLength {
		return Keypair{}, fmt.Errorf("%w: got %d bytes, want %d", ErrKeyLength, len(key), KeypairLength)
	}
	return Keypair{key: bytes.Clone(key)}, nil
}

// String returns the base58 encoding of the 64 keypair bytes.
func (k Keypair) String() string {
	if len(k.key) == 0 {
		return ""
	}
	return base58.Encode(k.key)
}

// IsZero reports whether the keypair holds no key.
func (k Keypair) IsZero() bool {
	return len(k.key) == 0
}

// Pubkey returns the public half of the keypair.
func (k Keypair) Pubkey() Pubkey {
	var p Pubkey
	if len(k.key) == KeypairLength {
		copy(p.b[:], k.key[ed25519.SeedSize:])
	}
	return p
}

// PrivateKey returns a copy of the underlying ed25519 key.
func (k Keypair) PrivateKey() ed25519.PrivateKey {
	return bytes.Clone(k.key)
}

func (k Keypair) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Keypair) UnmarshalText(text []byte) error {
	parsed, err := ParseKeypair(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Pubkey is a 32-byte public key encoded as base58.
type Pubkey struct {
	b [PubkeyLength]byte
}

// ParsePubkey decodes base58 text into a public key of exactly 32 bytes.
func ParsePubkey(s string) (Pubkey, error) {
	raw, err := decodeBase58(s)
	if err != nil {
		return Pubkey{}, err
	}
	if len(raw) != PubkeyLength {
		return Pubkey{}, fmt.Errorf("%w: decoded %d bytes, want %d", ErrKeyLength, len(raw), PubkeyLength)
	}
	var p Pubkey
	copy(p.b[:], raw)
	return p, nil
}

func (p Pubkey) String() string {
	return base58.Encode(p.b[:])
}

// Bytes returns a copy of the key bytes.
func (p Pubkey) Bytes() []byte {
	return bytes.Clone(p.b[:])
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func decodeBase58(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrBase58)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase58, err)
	}
	return raw, nil
}

// BindAddress is an IP address and port the validator listens on.
type BindAddress struct {
	netip.AddrPort
}

// ParseBindAddress parses "ip:port"; IPv6 addresses are written in brackets.
func ParseBindAddress(s string) (BindAddress, error) {
	ap, err := netip.ParseAddrPort(strings.TrimSpace(s))
	if err != nil {
		return BindAddress{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return BindAddress{AddrPort: ap}, nil
}

// MustBindAddress is ParseBindAddress for constants; it panics on malformed input.
func MustBindAddress(s string) BindAddress {
	a, err := ParseBindAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a BindAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *BindAddress) UnmarshalText(text []byte) error {
	parsed, err := ParseBindAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// BlockSize is the accounts-db block size. Only the three declared sizes exist.
type BlockSize uint32

const (
	Block128 BlockSize = 128
	Block256 BlockSize = 256
	Block512 BlockSize = 512
)

// ParseBlockSize accepts the numeric identity ("256") or the tag name ("Block256").
func ParseBlockSize(s string) (BlockSize, error) {
	s = strings.TrimSpace(s)
	if tag, ok := strings.CutPrefix(s, "Block"); ok {
		s = tag
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBlockSize, s)
	}
	return BlockSizeFromUint(n)
}

// BlockSizeFromUint maps a numeric identity onto its block size.
func BlockSizeFromUint(n uint64) (BlockSize, error) {
	switch b := BlockSize(n); b {
	case Block128, Block256, Block512:
		if uint64(b) == n {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %d (want 128, 256 or 512)", ErrUnknownBlockSize, n)
}

func (b BlockSize) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

func (b BlockSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BlockSize) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockSize(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// LifecycleMode controls how the validator treats accounts cloned from the remote cluster.
type LifecycleMode string

const (
	LifecycleEphemeral       LifecycleMode = "ephemeral"
	LifecycleReplica         LifecycleMode = "replica"
	LifecycleOffline         LifecycleMode = "offline"
	LifecycleProgramsReplica LifecycleMode = "programs-replica"
)

// LifecycleModes lists every accepted mode.
var LifecycleModes = []LifecycleMode{
	LifecycleEphemeral,
	LifecycleReplica,
	LifecycleOffline,
	LifecycleProgramsReplica,
}

// ParseLifecycleMode accepts the kebab-case mode names.
func ParseLifecycleMode(s string) (LifecycleMode, error) {
	m := LifecycleMode(strings.TrimSpace(s))
	for _, known := range LifecycleModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownLifecycle, s, lifecycleNames())
}

func lifecycleNames() string {
	names := make([]string, len(LifecycleModes))
	for i, m := range LifecycleModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func (m LifecycleMode) String() string {
	return string(m)
}

func (m LifecycleMode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

func (m *LifecycleMode) UnmarshalText(text []byte) error {
	parsed, err := ParseLifecycleMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// CountryCode is an upper-case ISO 3166-1 alpha-2 code.
// The codec checks the shape; membership in the ISO list is checked by struct validation.
type CountryCode string

// ParseCountryCode normalizes and checks a two-letter code.
func ParseCountryCode(s string) (CountryCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'A' || s[0] > 'Z' || s[1] < 'A' || s[1] > 'Z' {
		return "", fmt.Errorf("%w: %q (want two letters)", ErrInvalidCountry, s)
	}
	return CountryCode(s), nil
}

func (c CountryCode) String() string {
	return string(c)
}

func (c CountryCode) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (c *CountryCode) UnmarshalText(text []byte) error {
	parsed, err := ParseCountryCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// URL is an absolute URL with scheme and host.
type URL struct {
	url.URL
}

// ParseURL parses s without any alias substitution.
func ParseURL(s string) (URL, error) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return URL{}, fmt.Errorf("%w: %q is not an absolute url", ErrInvalidURL, s)
	}
	return URL{URL: *u}, nil
}

// MustURL is ParseURL for constants; it panics on malformed input.
func MustURL(s string) URL {
	u, err := ParseURL(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u URL) String() string {
	return u.URL.String()
}

func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URL) UnmarshalText(text []byte) error {
	parsed, err := ParseURL(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ByteSize is a size in bytes. Text may be a plain integer or a human form like "100MiB".
type ByteSize uint64

// ParseByteSize parses an integer byte count, optionally suffixed "B", or a humanized size.
func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimSpace(strings.TrimSuffix(s, "B"))
	if n, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), 10, 64); err == nil {
		return ByteSize(n), nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	return ByteSize(n), nil
}

// String renders the size in binary units, e.g. "100 MiB", falling back to an exact
// byte count such as "104857601 B" when the unit form would round. Either form parses
// back to the same size. MarshalText writes the plain integer.
func (b ByteSize) String() string {
	s := humanize.IBytes(uint64(b))
	if n, err := humanize.ParseBytes(s); err == nil && n == uint64(b) {
		return s
	}
	return strconv.FormatUint(uint64(b), 10) + " B"
}

func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(b), 10)), nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	parsed, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
