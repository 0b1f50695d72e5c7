// FILE: lixenwraith/valconfig/remote.go
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Well-known cluster endpoints reachable by alias.
const (
	MainnetURL   = "https://api.mainnet-beta.solana.com"
	DevnetURL    = "https://api.devnet.solana.com"
	TestnetURL   = "https://api.testnet.solana.com"
	LocalhostURL = "http://127.0.0.1:8899"
)

// clusterAliases maps shorthand tokens to their endpoints. Matching is exact and case-sensitive.
var clusterAliases = map[string]string{
	"mainnet":   MainnetURL,
	"devnet":    DevnetURL,
	"testnet":   TestnetURL,
	"localhost": LocalhostURL,
	"dev":       LocalhostURL,
}

// ClusterURL is an absolute endpoint URL of a remote cluster.
type ClusterURL struct {
	URL
}

// ParseClusterURL expands an alias token, then validates the result as an absolute URL.
func ParseClusterURL(s string) (ClusterURL, error) {
	s = strings.TrimSpace(s)
	if expanded, ok := clusterAliases[s]; ok {
		s = expanded
	}
	u, err := ParseURL(s)
	if err != nil {
		return ClusterURL{}, err
	}
	return ClusterURL{URL: u}, nil
}

// parseLiteralClusterURL validates s as a URL without alias expansion.
func parseLiteralClusterURL(s string) (ClusterURL, error) {
	u, err := ParseURL(s)
	if err != nil {
		return ClusterURL{}, err
	}
	return ClusterURL{URL: u}, nil
}

func (u *ClusterURL) UnmarshalText(text []byte) error {
	parsed, err := ParseClusterURL(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Remote is one cluster endpoint set: either UnifiedRemote or DisjointedRemote.
type Remote interface {
	// RequestURL is where JSON-RPC requests go.
	RequestURL() ClusterURL
	// SubscriptionURL is where websocket subscriptions go.
	SubscriptionURL() ClusterURL
	String() string
	isRemote()
}

// UnifiedRemote serves requests and subscriptions from one URL.
type UnifiedRemote struct {
	URL ClusterURL
}

func (r UnifiedRemote) RequestURL() ClusterURL      { return r.URL }
func (r UnifiedRemote) SubscriptionURL() ClusterURL { return r.URL }
func (r UnifiedRemote) String() string              { return r.URL.String() }
func (UnifiedRemote) isRemote()                     {}

// DisjointedRemote uses separate request and subscription URLs.
type DisjointedRemote struct {
	HTTPURL ClusterURL
	WSURL   ClusterURL
}

func (r DisjointedRemote) RequestURL() ClusterURL      { return r.HTTPURL }
func (r DisjointedRemote) SubscriptionURL() ClusterURL { return r.WSURL }
func (r DisjointedRemote) String() string {
	return fmt.Sprintf("http=%s ws=%s", r.HTTPURL.String(), r.WSURL.String())
}
func (DisjointedRemote) isRemote() {}

// RemoteCluster is the validator's upstream: SingleRemote or MultipleRemotes.
type RemoteCluster interface {
	Remotes() []Remote
	String() string
	isRemoteCluster()
}

// SingleRemote is a cluster reached through one endpoint set.
type SingleRemote struct {
	Remote Remote
}

func (c SingleRemote) Remotes() []Remote { return []Remote{c.Remote} }
func (c SingleRemote) String() string {
	if c.Remote == nil {
		return ""
	}
	return c.Remote.String()
}
func (SingleRemote) isRemoteCluster() {}

// MultipleRemotes is a cluster reached through several endpoint sets.
type MultipleRemotes []Remote

func (c MultipleRemotes) Remotes() []Remote { return c }
func (c MultipleRemotes) String() string {
	parts := make([]string, len(c))
	for i, r := range c {
		parts[i] = "[" + r.String() + "]"
	}
	return strings.Join(parts, ", ")
}
func (MultipleRemotes) isRemoteCluster() {}

// ParseRemoteCluster parses the string form used by flags and environment variables.
// The result is always a SingleRemote holding a UnifiedRemote.
func ParseRemoteCluster(s string) (RemoteCluster, error) {
	u, err := ParseClusterURL(s)
	if err != nil {
		return nil, err
	}
	return SingleRemote{Remote: UnifiedRemote{URL: u}}, nil
}

// MustRemoteCluster is ParseRemoteCluster for constants; it panics on malformed input.
func MustRemoteCluster(s string) RemoteCluster {
	rc, err := ParseRemoteCluster(s)
	if err != nil {
		panic(err)
	}
	return rc
}

// IsSingleUnified reports whether rc is representable as a single string.
func IsSingleUnified(rc RemoteCluster) bool {
	single, ok := rc.(SingleRemote)
	if !ok {
		return false
	}
	_, ok = single.Remote.(UnifiedRemote)
	return ok
}

// remoteTable is the structured file form of one remote.
type remoteTable struct {
	URL  string `mapstructure:"url"`
	HTTP string `mapstructure:"http"`
	WS   string `mapstructure:"ws"`
}

// decodeRemoteCluster accepts every representation a source can hold for "remote".
// Bare strings go through alias expansion; table fields are taken literally.
func decodeRemoteCluster(raw any) (RemoteCluster, error) {
	switch v := raw.(type) {
	case RemoteCluster:
		return v, nil
	case string:
		return ParseRemoteCluster(v)
	case map[string]any:
		r, err := decodeRemoteTable(v)
		if err != nil {
			return nil, err
		}
		return SingleRemote{Remote: r}, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: expected string, table or array, got %T", ErrInvalidRemote, raw)
	}
	if rv.Len() == 0 {
		return nil, fmt.Errorf("%w: remote list is empty", ErrInvalidRemote)
	}
	remotes := make(MultipleRemotes, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		r, err := decodeRemote(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("remote[%d]: %w", i, err)
		}
		remotes = append(remotes, r)
	}
	return remotes, nil
}

func decodeRemote(raw any) (Remote, error) {
	switch v := raw.(type) {
	case Remote:
		return v, nil
	case string:
		u, err := ParseClusterURL(v)
		if err != nil {
			return nil, err
		}
		return UnifiedRemote{URL: u}, nil
	case map[string]any:
		return decodeRemoteTable(v)
	default:
		return nil, fmt.Errorf("%w: expected string or table, got %T", ErrInvalidRemote, raw)
	}
}

func decodeRemoteTable(m map[string]any) (Remote, error) {
	var tbl remoteTable
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &tbl,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRemote, err)
	}

	switch {
	case tbl.URL != "" && tbl.HTTP == "" && tbl.WS == "":
		u, err := parseLiteralClusterURL(tbl.URL)
		if err != nil {
			return nil, err
		}
		return UnifiedRemote{URL: u}, nil
	case tbl.URL == "" && tbl.HTTP != "" && tbl.WS != "":
		httpURL, err := parseLiteralClusterURL(tbl.HTTP)
		if err != nil {
			return nil, fmt.Errorf("http: %w", err)
		}
		wsURL, err := parseLiteralClusterURL(tbl.WS)
		if err != nil {
			return nil, fmt.Errorf("ws: %w", err)
		}
		return DisjointedRemote{HTTPURL: httpURL, WSURL: wsURL}, nil
	default:
		return nil, fmt.Errorf("%w: table needs either url or both http and ws", ErrInvalidRemote)
	}
}

// encodeRemoteCluster renders rc in the form decodeRemoteCluster reads back.
func encodeRemoteCluster(rc RemoteCluster) any {
	switch c := rc.(type) {
	case SingleRemote:
		if u, ok := c.Remote.(UnifiedRemote); ok {
			return u.URL.String()
		}
		return encodeRemote(c.Remote)
	case MultipleRemotes:
		allUnified := true
		for _, r := range c {
			if _, ok := r.(UnifiedRemote); !ok {
				allUnified = false
				break
			}
		}
		if allUnified {
			urls := make([]any, len(c))
			for i, r := range c {
				urls[i] = r.RequestURL().String()
			}
			return urls
		}
		tables := make([]map[string]any, len(c))
		for i, r := range c {
			tables[i] = encodeRemote(r)
		}
		return tables
	default:
		return nil
	}
}

func encodeRemote(r Remote) map[string]any {
	switch v := r.(type) {
	case UnifiedRemote:
		return map[string]any{"url": v.URL.String()}
	case DisjointedRemote:
		return map[string]any{"http": v.HTTPURL.String(), "ws": v.WSURL.String()}
	default:
		return nil
	}
}
