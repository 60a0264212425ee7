// Package content loads the static bot content: user-facing texts,
// application categories, their chat links and attachments.
//
// The content file is YAML. An embedded Ukrainian default is used when no
// file is configured.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"recruit/internal/conversation/validation"
	"recruit/internal/messaging/actions"
	strs "recruit/pkg/platform/strings"
)

//go:embed default.yaml
var defaultYAML []byte

// Texts are the user-facing strings. Fields with {placeholders} are rendered
// with strs.Fill.
type Texts struct {
	Greeting         string            `yaml:"greeting"`
	Help             string            `yaml:"help"`
	Prompts          map[string]string `yaml:"prompts"`
	Invalid          map[string]string `yaml:"invalid"`
	Submitted        string            `yaml:"submitted"`
	SessionMissing   string            `yaml:"session_missing"`
	Cancelled        string            `yaml:"cancelled"`
	NothingToCancel  string            `yaml:"nothing_to_cancel"`
	StorageRetry     string            `yaml:"storage_retry"`
	StaleSelection   string            `yaml:"stale_selection"`
	Accepted         string            `yaml:"accepted"`
	Rejected         string            `yaml:"rejected"`
	Instructions     string            `yaml:"instructions"`
	ModeratorSummary string            `yaml:"moderator_summary"`
	AcceptButton     string            `yaml:"accept_button"`
	RejectButton     string            `yaml:"reject_button"`
	DecisionAccepted string            `yaml:"decision_accepted"`
	DecisionRejected string            `yaml:"decision_rejected"`
	DecisionFooter   string            `yaml:"decision_footer"`
	NotFound         string            `yaml:"not_found"`
	AlreadyDecided   string            `yaml:"already_decided"`
	DecisionRetry    string            `yaml:"decision_retry"`
	Stats            string            `yaml:"stats"`
	StatsForbidden   string            `yaml:"stats_forbidden"`
	ActionForbidden  string            `yaml:"action_forbidden"`
	NoHandle         string            `yaml:"no_handle"`
	TimeLayout       string            `yaml:"time_layout"`
}

// Links is the pair of chat invitations sent to an accepted applicant.
type Links struct {
	Category string `yaml:"category"`
	Common   string `yaml:"common"`
}

// Attachment references a static asset by key.
type Attachment struct {
	Key     string `yaml:"key"`
	Kind    string `yaml:"kind"`
	Caption string `yaml:"caption"`
}

// Category is one selectable application track.
type Category struct {
	Key         string       `yaml:"key"`
	Label       string       `yaml:"label"`
	Links       Links        `yaml:"links"`
	Attachments []Attachment `yaml:"attachments"`
}

// Content is the parsed content file.
type Content struct {
	Texts        Texts      `yaml:"texts"`
	Categories   []Category `yaml:"categories"`
	DefaultLinks Links      `yaml:"default_links"`
}

// Load reads the content file at path, or the embedded default when path is
// empty.
func Load(path string) (*Content, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Parse decodes and validates content YAML.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the content can drive a full conversation.
func (c *Content) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("content: at least one category is required")
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		key := strs.NormalizeKey(cat.Key)
		if key == "" {
			return fmt.Errorf("content: category %d has no key", i)
		}
		if strings.Contains(cat.Key, ":") {
			return fmt.Errorf("content: category key %q must not contain ':'", cat.Key)
		}
		if n := len(actions.SelectCategory(cat.Key).Encode()); n > actions.MaxEncodedLen {
			return fmt.Errorf("content: category key %q encodes to %d bytes, limit is %d", cat.Key, n, actions.MaxEncodedLen)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("content: duplicate category key %q", cat.Key)
		}
		seen[key] = struct{}{}
		for _, a := range cat.Attachments {
			switch a.Kind {
			case "photo", "document":
			default:
				return fmt.Errorf("content: attachment %q has unknown kind %q", a.Key, a.Kind)
			}
		}
	}
	if c.DefaultLinks.Category == "" && c.DefaultLinks.Common == "" {
		return fmt.Errorf("content: default_links are required")
	}
	if c.Texts.TimeLayout == "" {
		c.Texts.TimeLayout = "02.01.2006 15:04"
	}
	return nil
}

// Category finds a category by key, case-insensitively.
func (c *Content) Category(key string) (Category, bool) {
	want := strs.NormalizeKey(key)
	for _, cat := range c.Categories {
		if strs.NormalizeKey(cat.Key) == want {
			return cat, true
		}
	}
	return Category{}, false
}

// Choices returns the categories as validation choices, in file order.
func (c *Content) Choices() []validation.Choice {
	choices := make([]validation.Choice, 0, len(c.Categories))
	for _, cat := range c.Categories {
		choices = append(choices, validation.Choice{Key: cat.Key, Label: strs.FirstNonEmpty(cat.Label, cat.Key)})
	}
	return choices
}

// LinksFor resolves the links of a category. Unknown categories and
// categories without links get DefaultLinks.
func (c *Content) LinksFor(key string) Links {
	cat, ok := c.Category(key)
	if !ok {
		return c.DefaultLinks
	}
	links := cat.Links
	if links.Category == "" {
		links.Category = c.DefaultLinks.Category
	}
	if links.Common == "" {
		links.Common = c.DefaultLinks.Common
	}
	return links
}
