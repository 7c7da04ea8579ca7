package models

// SiteInfo is the company information shown in the header, footer and contact page
type SiteInfo struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	URL         string      `json:"url" yaml:"url"`
	Phone       string      `json:"phone" yaml:"phone"`
	Email       string      `json:"email" yaml:"email"`
	Address     string      `json:"address" yaml:"address"`
	Hours       string      `json:"hours,omitempty" yaml:"hours,omitempty"`
	Links       SocialLinks `json:"links" yaml:"links"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
}

// Service is one offering on the services page
type Service struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// AboutPage is the about page copy: a tagline and titled sections
type AboutPage struct {
	Tagline  string         `json:"tagline" yaml:"tagline"`
	Sections []AboutSection `json:"sections" yaml:"sections"`
}

type AboutSection struct {
	Title   string      `json:"title" yaml:"title"`
	Intro   string      `json:"intro,omitempty" yaml:"intro,omitempty"`
	Items   []AboutItem `json:"items,omitempty" yaml:"items,omitempty"`
	Closing string      `json:"closing,omitempty" yaml:"closing,omitempty"`
}

// AboutItem is one highlighted point. Heading is empty for plain paragraphs.
type AboutItem struct {
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Text    string `json:"text" yaml:"text"`
}
