// Package directory defines the org-directory collaborator boundary. The
// core consumes an injected resolver that maps a requester's role to its
// ordered approver chain; it never implements directory lookup itself.
package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Approver is one entry of an approval chain, in chain order.
type Approver struct {
	Identity string `yaml:"identity"`
	Role     string `yaml:"role"`
}

// Resolver yields the ordered approver chain for a requester role.
type Resolver interface {
	ApproversFor(requesterRole string) ([]Approver, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(requesterRole string) ([]Approver, error)

func (f ResolverFunc) ApproversFor(requesterRole string) ([]Approver, error) {
	return f(requesterRole)
}

// StaticResolver resolves approver chains from a fixed mapping, typically
// loaded from a YAML file. The "default" key applies to any role without
// an explicit chain.
type StaticResolver struct {
	Chains map[string][]Approver `yaml:"chains"`
}

// NewStaticResolver creates a resolver over a fixed mapping.
func NewStaticResolver(chains map[string][]Approver) *StaticResolver {
	return &StaticResolver{Chains: chains}
}

// LoadStaticResolver reads a chain mapping from a YAML file.
func LoadStaticResolver(path string) (*StaticResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read approver chains from %s: %w", path, err)
	}

	var resolver StaticResolver
	if err := yaml.Unmarshal(data, &resolver); err != nil {
		return nil, fmt.Errorf("failed to parse approver chains from %s: %w", path, err)
	}
	return &resolver, nil
}

// ApproversFor returns the chain configured for the role, falling back to
// the "default" chain.
func (r *StaticResolver) ApproversFor(requesterRole string) ([]Approver, error) {
	if chain, ok := r.Chains[requesterRole]; ok {
		return chain, nil
	}
	if chain, ok := r.Chains["default"]; ok {
		return chain, nil
	}
	return nil, fmt.Errorf("no approver chain configured for role %q", requesterRole)
}
