package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// Platform identifies an upload destination
type Platform string

const (
	PlatformCurseForge Platform = "curseforge"
	PlatformModrinth   Platform = "modrinth"
	PlatformGitHub     Platform = "github"
)

// AllPlatforms lists every supported destination in execution order
var AllPlatforms = []Platform{PlatformCurseForge, PlatformModrinth, PlatformGitHub}

// ParsePlatform canonicalizes a platform name. Matching is
// case-insensitive; the canonical form is lowercase.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformCurseForge:
		return PlatformCurseForge, nil
	case PlatformModrinth:
		return PlatformModrinth, nil
	case PlatformGitHub:
		return PlatformGitHub, nil
	}
	return "", goerr.New("unknown platform", goerr.V("platform", s), goerr.T(types.ErrTagConfig))
}

// ReleaseType classifies an upload as release, beta or alpha
type ReleaseType string

const (
	ReleaseTypeRelease ReleaseType = "release"
	ReleaseTypeBeta    ReleaseType = "beta"
	ReleaseTypeAlpha   ReleaseType = "alpha"
)

// ParseReleaseType canonicalizes a release type name (case-insensitive)
func ParseReleaseType(s string) (ReleaseType, error) {
	switch ReleaseType(strings.ToLower(strings.TrimSpace(s))) {
	case ReleaseTypeRelease:
		return ReleaseTypeRelease, nil
	case ReleaseTypeBeta:
		return ReleaseTypeBeta, nil
	case ReleaseTypeAlpha:
		return ReleaseTypeAlpha, nil
	}
	return "", goerr.New("unknown release type", goerr.V("version_type", s), goerr.T(types.ErrTagConfig))
}

// UnmarshalText allows release types to be decoded directly from TOML
func (t *ReleaseType) UnmarshalText(text []byte) error {
	parsed, err := ParseReleaseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Prerelease reports whether this type marks a GitHub release as a
// pre-release (beta and alpha uploads do, full releases do not)
func (t ReleaseType) Prerelease() bool {
	return t == ReleaseTypeBeta || t == ReleaseTypeAlpha
}

// Loader is a mod loader supported by an upload
type Loader string

const (
	LoaderForge     Loader = "forge"
	LoaderNeoForge  Loader = "neoforge"
	LoaderFabric    Loader = "fabric"
	LoaderQuilt     Loader = "quilt"
	LoaderModLoader Loader = "modloader"
)

// ParseLoader canonicalizes a loader name (case-insensitive)
func ParseLoader(s string) (Loader, error) {
	switch Loader(strings.ToLower(strings.TrimSpace(s))) {
	case LoaderForge:
		return LoaderForge, nil
	case LoaderNeoForge:
		return LoaderNeoForge, nil
	case LoaderFabric:
		return LoaderFabric, nil
	case LoaderQuilt:
		return LoaderQuilt, nil
	case LoaderModLoader:
		return LoaderModLoader, nil
	}
	return "", goerr.New("unknown mod loader", goerr.V("loader", s), goerr.T(types.ErrTagConfig))
}

// UnmarshalText allows loaders to be decoded directly from TOML
func (l *Loader) UnmarshalText(text []byte) error {
	parsed, err := ParseLoader(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// CurseEnvironment is the CurseForge environment tag of an upload
type CurseEnvironment string

const (
	CurseEnvironmentClient CurseEnvironment = "client"
	CurseEnvironmentServer CurseEnvironment = "server"
	CurseEnvironmentBoth   CurseEnvironment = "both"
)

// ParseCurseEnvironment canonicalizes an environment name (case-insensitive)
func ParseCurseEnvironment(s string) (CurseEnvironment, error) {
	switch CurseEnvironment(strings.ToLower(strings.TrimSpace(s))) {
	case CurseEnvironmentClient:
		return CurseEnvironmentClient, nil
	case CurseEnvironmentServer:
		return CurseEnvironmentServer, nil
	case CurseEnvironmentBoth:
		return CurseEnvironmentBoth, nil
	}
	return "", goerr.New("unknown curse environment", goerr.V("curse_environment", s), goerr.T(types.ErrTagConfig))
}

// UnmarshalText allows environments to be decoded directly from TOML
func (e *CurseEnvironment) UnmarshalText(text []byte) error {
	parsed, err := ParseCurseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
