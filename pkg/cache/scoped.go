package cache

import "strings"

// ScopedKeyer namespaces every key of an inner Keyer, so that builds,
// tenants or server instances sharing one backend never read each other's
// entries.
type ScopedKeyer struct {
	Keyer
	Scope string
}

// NewScopedKeyer prefixes the keys of inner (DefaultKeyer when nil) with
// prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Keyer: inner, Scope: prefix}
}

// NewVersionedKeyer scopes keys to a build version. Cached layouts and
// renders from other builds are then ignored rather than decoded.
func NewVersionedKeyer(version string) Keyer {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}
	return NewScopedKeyer(nil, version+":")
}

func (k ScopedKeyer) TokensKey(textHash string, opts TokensKeyOpts) string {
	return k.Scope + k.Keyer.TokensKey(textHash, opts)
}

func (k ScopedKeyer) LayoutKey(tableHash string, opts LayoutKeyOpts) string {
	return k.Scope + k.Keyer.LayoutKey(tableHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Scope + k.Keyer.ArtifactKey(layoutHash, opts)
}

func (k ScopedKeyer) StoredKey(id string) string {
	return k.Scope + k.Keyer.StoredKey(id)
}
