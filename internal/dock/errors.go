package dock

import "errors"

var (
	// ErrForeignTransfer rejects a drag whose token does not resolve to a
	// dockable hosted by this Dock (another Dock's tab or a stale token).
	ErrForeignTransfer = errors.New("dock: transfer does not belong to this dock")
	// ErrNoTarget rejects a drop that is not over any container.
	ErrNoTarget = errors.New("dock: no drop target under pointer")
	// ErrDegenerateDrop rejects a drop that would leave the dockable where it is.
	ErrDegenerateDrop = errors.New("dock: drop does not change placement")
	// ErrNotDragging is returned by Drop when no drag is in flight.
	ErrNotDragging = errors.New("dock: no drag in progress")
)
