package mapping

import "errors"

var (
	// ErrNoArtifact means a domain's mapping directory holds no artifact.
	ErrNoArtifact = errors.New("no mapping artifact found")
	// ErrAmbiguousArtifact means a domain's mapping directory holds more
	// than one artifact; silently picking one would be nondeterministic.
	ErrAmbiguousArtifact = errors.New("multiple mapping artifacts found")
)

// Repository loads mapping tables by concept domain.
type Repository interface {
	Load(domain Domain) ([]Entry, error)
}
