package model

// CurseGameVersion is one entry of the CurseForge game version list.
// Upload requests reference versions by numeric ID, so configured
// version names are resolved against this list first.
type CurseGameVersion struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	GameVersionTypeID int64  `json:"gameVersionTypeID"`
}

// CurseRelation links an upload to another CurseForge project
type CurseRelation struct {
	Slug string
	// Type is one of requiredDependency, optionalDependency,
	// incompatible or embeddedLibrary
	Type string
}

// CurseUploadRequest is a single file upload to CurseForge. Child
// files (ParentFileID set) inherit game versions from their parent and
// must not carry their own.
type CurseUploadRequest struct {
	FilePath       string
	DisplayName    string
	Changelog      string
	ChangelogType  string
	ReleaseType    ReleaseType
	GameVersionIDs []int64
	Relations      []CurseRelation
	ParentFileID   *int64
}

// CurseUploadResult is the identifier of an uploaded CurseForge file
type CurseUploadResult struct {
	ID int64 `json:"id"`
}

// ModrinthDependency links a Modrinth version to another project
type ModrinthDependency struct {
	ProjectID string `json:"project_id"`
	// DependencyType is one of required, optional, incompatible or
	// embedded
	DependencyType string `json:"dependency_type"`
}

// ModrinthFile is one file part of a Modrinth version upload
type ModrinthFile struct {
	Path    string
	Primary bool
}

// ModrinthVersionRequest creates one project version with all of its
// files in a single call
type ModrinthVersionRequest struct {
	ProjectID     string
	Name          string
	VersionNumber string
	Changelog     string
	VersionType   ReleaseType
	GameVersions  []string
	Loaders       []Loader
	Featured      bool
	Dependencies  []ModrinthDependency
	Files         []ModrinthFile
}

// ModrinthVersionResult identifies a created Modrinth version
type ModrinthVersionResult struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
}
