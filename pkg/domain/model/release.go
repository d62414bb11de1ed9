package model

// Release is a GitHub release as seen by the reconciliation logic
type Release struct {
	ID         int64
	TagName    string
	Name       string
	Draft      bool
	Prerelease bool
	HTMLURL    string
}

// ReleaseParams describes a brand-new GitHub release. New releases
// always start as drafts so that assets can be attached before the
// release becomes visible.
type ReleaseParams struct {
	Tag             string
	Name            string
	Body            string
	Draft           bool
	TargetCommitish string
}

// ReleasePatch is the single update committed at the end of
// reconciliation. Draft is only set for releases that started as
// drafts; a nil Draft leaves the flag untouched.
type ReleasePatch struct {
	Prerelease bool
	Draft      *bool
}

// ReleaseAsset is a binary blob attached to a release
type ReleaseAsset struct {
	ID   int64
	Name string
	URL  string
}
