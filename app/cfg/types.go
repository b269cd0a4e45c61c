package cfg

type Cfg struct {
	// Source configuration
	SourceURL    string
	FetchTimeout int

	// Application configuration
	TargetsDir   string
	DBPath       string
	Port         string
	NotifyAt     string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
