package cache

import "strings"

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey is the key of a cached API response.
	HTTPKey(namespace, key string) string
	// ArtifactKey is the key of a rendered scene.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the inputs that determine a rendered artifact.
type ArtifactKeyOpts struct {
	Scene     string
	Format    string
	ThemeHash string
	DataHash  string
	Params    map[string]string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + strings.TrimSuffix(namespace, ":") + ":" + key
}

// ArtifactKey hashes every input so that any change yields a new key.
func (DefaultKeyer) ArtifactKey(o ArtifactKeyOpts) string {
	return hashKey("artifact", o.Scene, o.Format, o.ThemeHash, o.DataHash, o.Params)
}
