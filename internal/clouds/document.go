// Package clouds models the cloud credential document (clouds.yaml) and
// fetches it from the in-cluster Keystone client pod.
package clouds

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AdminProfile is the profile rewritten for external access.
const AdminProfile = "admin"

// ErrProfileNotFound reports that the document has no usable profile of the
// requested name.
var ErrProfileNotFound = errors.New("cloud profile not found")

// Cloud is one named authentication record. It stays a generic mapping so
// that fields this tool does not know about survive a parse/rewrite cycle
// untouched.
type Cloud map[string]interface{}

// Document is the top-level clouds.yaml container.
type Document struct {
	Clouds map[string]Cloud `yaml:"clouds"`
}

// Parse decodes a clouds.yaml document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse credential document: %w", err)
	}
	if doc.Clouds == nil {
		return nil, fmt.Errorf("credential document has no clouds section")
	}
	return &doc, nil
}

// Profile returns the named cloud profile.
func (d *Document) Profile(name string) (Cloud, error) {
	cloud, ok := d.Clouds[name]
	if !ok || cloud == nil {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return cloud, nil
}

// RewriteForPublicAccess overwrites the four fields that point the profile at
// the external-facing deployment: the Keystone endpoint URL, the TLS verify
// flag, and the interface/endpoint types. All other fields are preserved.
func (c Cloud) RewriteForPublicAccess(authURL string) error {
	auth, ok := c["auth"].(map[string]interface{})
	if !ok {
		if c["auth"] != nil {
			return fmt.Errorf("auth section has unexpected shape %T", c["auth"])
		}
		auth = map[string]interface{}{}
		c["auth"] = auth
	}
	auth["auth_url"] = authURL
	c["verify"] = false
	c["interface"] = "public"
	c["endpoint_type"] = "publicURL"
	return nil
}

// MarshalProfile serializes a single profile as YAML.
func MarshalProfile(cloud Cloud) (string, error) {
	data, err := yaml.Marshal(cloud)
	if err != nil {
		return "", fmt.Errorf("failed to serialize cloud profile: %w", err)
	}
	return string(data), nil
}

// Marshal serializes the whole document.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize credential document: %w", err)
	}
	return data, nil
}
