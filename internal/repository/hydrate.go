package repository

// HydrateStatus describes the outcome of AccountRepository.Hydrate.
type HydrateStatus int

const (
	// HydrateEmpty means the side-store holds no snapshot; the list is unchanged.
	HydrateEmpty HydrateStatus = iota
	// HydrateLoaded means the list was replaced with the stored snapshot.
	HydrateLoaded
	// HydrateMalformed means the snapshot did not parse; the list is unchanged.
	HydrateMalformed
	// HydrateUnavailable means the side-store could not be read; the list is unchanged.
	HydrateUnavailable
)

func (s HydrateStatus) String() string {
	switch s {
	case HydrateEmpty:
		return "empty"
	case HydrateLoaded:
		return "loaded"
	case HydrateMalformed:
		return "malformed"
	case HydrateUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// HydrateResult is returned by Hydrate instead of an error so the caller can
// decide how loud a failed load should be.
type HydrateResult struct {
	Status HydrateStatus
	// Count is the number of loaded accounts when Status is HydrateLoaded.
	Count int
	// Err holds the failure reason for HydrateMalformed and HydrateUnavailable.
	Err error
}

// OK reports whether the repository is in the state the side-store describes.
func (r HydrateResult) OK() bool {
	return r.Status == HydrateEmpty || r.Status == HydrateLoaded
}
