// Package updater refreshes the local conference data files from their
// upstream repositories: the security conference list is one flat YAML file,
// the AI list is consolidated from per-conference files.
package updater

import "time"

// Upstream endpoints.
const (
	// SecurityConferencesURL is the full security conference list.
	SecurityConferencesURL = "https://raw.githubusercontent.com/sec-deadlines/sec-deadlines.github.io/master/_data/conferences.yml"

	// AIConferencesBaseURL is the directory of per-conference AI files;
	// each conference lives at <base>/<name>.yml.
	AIConferencesBaseURL = "https://raw.githubusercontent.com/huggingface/ai-deadlines/main/src/data/conferences"
)

// aiConferenceNames is the fixed catalog of per-conference files under
// AIConferencesBaseURL. The upstream repository has no index, so the list
// is maintained by hand.
var aiConferenceNames = []string{
	"aaai", "aamas", "acl", "acm_mm", "aistats", "alt", "cec", "chi", "cikm", "coling",
	"collas", "colm", "colt", "conll", "corl", "cpal", "cvpr", "ecai", "eccv", "ecir",
	"ecml_pkdd", "emnlp", "esann", "eurographics", "fg", "icann", "icassp", "iccv", "icdar",
	"icdm", "iclr", "icml", "icomp", "icra", "ijcai", "ijcnlp_and_aacl", "ijcnn", "interspeech",
	"iros", "iui", "kdd", "ksem", "lrec", "mathai", "naacl", "neurips", "nlbse", "rlc",
	"rss", "sgp", "siggraph", "uai", "wacv", "wsdm", "www",
}

// AIConferenceNames returns a copy of the AI conference catalog.
func AIConferenceNames() []string {
	names := make([]string, len(aiConferenceNames))
	copy(names, aiConferenceNames)
	return names
}

// Config holds updater settings.
type Config struct {
	// DataDir is where the conference YAML files live
	DataDir string

	// SecurityURL overrides the security source endpoint, used in tests
	SecurityURL string

	// AIBaseURL overrides the AI source base endpoint, used in tests
	AIBaseURL string

	// FetchTimeout bounds one HTTP request
	FetchTimeout time.Duration

	// RequestsPerSecond paces requests against the upstream host
	RequestsPerSecond float64

	// MaxParallel bounds concurrent AI conference fetches
	MaxParallel int
}

// DefaultConfig returns production updater settings.
//
// The whole-list security fetch gets a longer timeout than the small
// per-conference AI files, matching their typical payload sizes.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:           dataDir,
		SecurityURL:       SecurityConferencesURL,
		AIBaseURL:         AIConferencesBaseURL,
		FetchTimeout:      30 * time.Second,
		RequestsPerSecond: 5.0,
		MaxParallel:       4,
	}
}
