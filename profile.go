package mailnote

import "strings"

// DefaultProfileName names the built-in newsletter profile.
const DefaultProfileName = "money-stuff"

// Profile describes how to find the footnote block of one newsletter.
type Profile struct {
	Name string `json:"name" yaml:"name"`

	// Delimiter is the phrase that opens the subscription/footnote block.
	Delimiter string `json:"delimiter" yaml:"delimiter"`

	// WrapperIDSuffix identifies the newsletter table inside forwarded mail.
	WrapperIDSuffix string `json:"wrapperIdSuffix" yaml:"wrapperIdSuffix"`
}

// DefaultProfile returns the built-in profile.
func DefaultProfile() Profile {
	return Profile{
		Name:            DefaultProfileName,
		Delimiter:       "If you'd like to get Money Stuff",
		WrapperIDSuffix: "wrapper",
	}
}

// Validate returns an error if the profile cannot be used for parsing.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Errorf(EINVALID, "profile name required")
	}
	if len(strings.Fields(p.Delimiter)) == 0 {
		return Errorf(EINVALID, "profile %q: delimiter phrase required", p.Name)
	}
	return nil
}
