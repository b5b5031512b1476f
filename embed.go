package folio

import "embed"

// EmbeddedAssets contains the default stylesheet shipped with the server.
// A file of the same name in the static directory takes precedence.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
