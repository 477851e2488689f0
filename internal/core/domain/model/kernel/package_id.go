package kernel

import (
	"strings"

	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
)

// packageIDPrefix marks generated tracking ids. The prefix keeps scanned
// barcodes visually distinguishable from shipment numbers and carrier
// references on paper manifests.
const packageIDPrefix = "FPX"

// ErrPackageIDIsRequired indicates a PackageID that was not created through
// NewPackageID or PackageIDFromString.
var ErrPackageIDIsRequired = errs.NewValueIsRequiredError(
	"PackageID must be created via NewPackageID or PackageIDFromString",
)

// PackageID is the opaque tracking identifier of a single physical parcel.
// It is generated once at manifest intake and never changes for the life
// of the package.
//
// The id is an uppercase string of the form "FPX" followed by 20 hex
// characters derived from a random UUID. Callers must treat it as opaque:
// no ordering or structure beyond the prefix is guaranteed.
type PackageID struct {
	value string
}

// NewPackageID generates a fresh tracking identifier for a package
// entering the system.
func NewPackageID() PackageID {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return PackageID{value: packageIDPrefix + hex[:20]}
}

// PackageIDFromString restores a PackageID from its persisted or scanned form.
// Surrounding whitespace is trimmed; an empty result is an error.
func PackageIDFromString(s string) (PackageID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PackageID{}, ErrPackageIDIsRequired
	}
	return PackageID{value: s}, nil
}

// String returns the tracking id as printed on labels and manifests.
func (p PackageID) String() string {
	return p.value
}

// IsEqual compares two package ids by value.
func (p PackageID) IsEqual(other PackageID) bool {
	return p.value == other.value
}

// Validate checks that the package id was properly constructed.
func (p PackageID) Validate() error {
	if p.value == "" {
		return ErrPackageIDIsRequired
	}
	return nil
}
