package types

// Config holds backend selection and parameters for Ledger.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ExtraLocations widens the storage location set beyond the built-in
	// fridge/freezer/pantry. Kept out of the base enum on purpose; see
	// the "counter" note in DESIGN.md.
	ExtraLocations []string `json:"extra_locations" yaml:"extra_locations"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
