// Package parcel provides domain entities and business logic for parcel
// management in the routing system. It implements the Parcel aggregate root
// with lifecycle management and the insurance approval state machine.
//
// The package includes:
//   - Parcel: The aggregate root that manages parcel identity, measurements,
//     audit payload, department assignment, and the approval lifecycle
//   - ApprovalStatus: A state machine that enforces valid insurance approval
//     transitions
//
// Key business rules:
//   - Parcels must have a valid unique identifier and a non-empty tracking ID
//   - Approval follows a closed workflow: not_required is terminal;
//     pending -> approved | rejected, both terminal
//   - A parcel pending insurance approval never carries a department
//   - Weight and value are optional but must be finite when present
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
