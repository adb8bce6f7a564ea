package manifest

import "github.com/hashicorp/hcl/v2"

// --- HCL decoding schemas ---

// fileSchema is the top-level structure of a manifest file.
type fileSchema struct {
	SourceDir string            `hcl:"source_dir"`
	Preamble  []string          `hcl:"preamble,optional"`
	Artifacts []*artifactSchema `hcl:"artifact,block"`
	Library   *librarySchema    `hcl:"library,block"`
}

// artifactSchema is an `artifact` block: one module built from cppo sources.
type artifactSchema struct {
	Name           string      `hcl:"name,label"`
	Interface      *unitSchema `hcl:"interface,block"`
	Implementation *unitSchema `hcl:"implementation,block"`
}

// unitSchema lists the extra files cppo includes for one compilation unit.
type unitSchema struct {
	Deps []string `hcl:"deps,optional"`
}

type librarySchema struct {
	Name        string       `hcl:"name,label"`
	Description []string     `hcl:"description,optional"`
	PublicName  string       `hcl:"public_name,optional"`
	Plugins     []*ppxSchema `hcl:"ppx,block"`
	Libraries   []string     `hcl:"libraries,optional"`
	Wrapped     *bool        `hcl:"wrapped,optional"`
}

// ppxSchema is a `ppx` block. Enabled is left unevaluated because it may
// reference the flavor.
type ppxSchema struct {
	Name    string         `hcl:"name,label"`
	Enabled hcl.Expression `hcl:"enabled,optional"`
}
