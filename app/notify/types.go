package notify

// Target configuration types

type Target struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"` // Webhook endpoint
	Persona  TargetPersona  `yaml:"persona"`
	Settings TargetSettings `yaml:"settings"`
}

type TargetPersona struct {
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

type TargetSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Mention  string `yaml:"mention"`  // Rendered in front of the greeting, e.g. a role mention
	Greeting string `yaml:"greeting"` // Overrides the default greeting line
}

// Webhook wire format

type webhookMessage struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Content   string         `json:"content"`
	Embeds    []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Footer      *webhookFooter `json:"footer,omitempty"`
}

type webhookFooter struct {
	Text string `json:"text"`
}
