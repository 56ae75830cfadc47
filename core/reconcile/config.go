package reconcile

// Source kinds for Config.Source.
const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
)

// Config holds the seed run settings.
type Config struct {
	// Source selects where documents are read from (dir, bucket).
	Source string `mapstructure:"source" default:"dir"`
	// Dir is the document directory when Source is dir.
	Dir string `mapstructure:"dir" default:"."`
	// Prefix is the object prefix when Source is bucket.
	Prefix string `mapstructure:"prefix" default:""`
	// Workers bounds concurrent records within a stage.
	Workers int `mapstructure:"workers" default:"1"`
	// DryRun performs lookups only.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// Strict makes any failed item fail the run.
	Strict bool `mapstructure:"strict" default:"false"`
	// Tags restricts the run to these entity types.
	Tags []string `mapstructure:"tags" default:""`
}

// Options derives the run options.
func (c Config) Options() Options {
	return Options{
		Workers: c.Workers,
		DryRun:  c.DryRun,
		Tags:    c.Tags,
	}
}
