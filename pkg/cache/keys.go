package cache

// ArtifactKeyOpts are the display options that change a rendered figure.
type ArtifactKeyOpts struct {
	Attrs   []string `json:"attrs"`
	Color   string   `json:"color"`
	Format  string   `json:"format"`
	DPI     int      `json:"dpi"`
	Version string   `json:"version"`
}

// ArtifactKey returns the key of a figure rendered from inputs hashing to
// inputHash (see [HashFiles]) with the given options.
func ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
