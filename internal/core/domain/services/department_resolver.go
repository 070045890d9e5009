package services

import (
	"context"
	"errors"
	"strings"

	"parcels/internal/core/domain/model/department"
	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
)

// DepartmentLookup is the read-side contract the resolver needs from the
// department store. Both lookups may suspend on I/O and must return an error
// unwrapping to errs.ErrObjectNotFound when nothing matches.
type DepartmentLookup interface {
	// GetByID retrieves a department by its canonical identifier.
	GetByID(ctx context.Context, id string) (*department.Department, error)

	// GetByName retrieves a department by case-insensitive exact name match.
	GetByName(ctx context.Context, name string) (*department.Department, error)
}

// DepartmentResolver resolves a department reference (an id or a name) to
// the department it denotes. It is used uniformly by explicit-assignment
// resolution, bucket department references, and default-bucket lookup, so
// every resolution site shares one semantics.
type DepartmentResolver struct {
	lookup DepartmentLookup
}

// NewDepartmentResolver creates a resolver backed by the given lookup.
func NewDepartmentResolver(lookup DepartmentLookup) DepartmentResolver {
	return DepartmentResolver{lookup: lookup}
}

// Resolve maps a reference to a department.
//
// An empty or blank reference resolves to nil. A reference that parses as a
// UUID is looked up by id only; an id-shaped reference that does not exist is
// not retried as a name. Any other reference is looked up by case-insensitive
// exact name. A miss on either path yields (nil, nil); only storage failures
// are returned as errors.
func (r DepartmentResolver) Resolve(ctx context.Context, ref string) (*department.Department, error) {
	candidate := strings.TrimSpace(ref)
	if candidate == "" {
		return nil, nil
	}

	if _, err := uuid.Parse(candidate); err == nil {
		return swallowNotFound(r.lookup.GetByID(ctx, candidate))
	}

	return swallowNotFound(r.lookup.GetByName(ctx, candidate))
}

func swallowNotFound(d *department.Department, err error) (*department.Department, error) {
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}
