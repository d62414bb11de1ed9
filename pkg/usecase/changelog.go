package usecase

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// ResolveChangelog returns the changelog body for an upload. A value
// with a "file:" prefix reads the referenced file as UTF-8; anything
// else is used as literal text.
func ResolveChangelog(changelog string) (string, error) {
	path, ok := strings.CutPrefix(changelog, "file:")
	if !ok {
		return changelog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "cannot read changelog file",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	return string(data), nil
}
