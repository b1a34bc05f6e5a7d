package models

// Social social network types accepted in a profile.
const (
	SocialGitHub   = "github"
	SocialLinkedIn = "linkedin"
	SocialX        = "x"
	SocialEmail    = "email"
	SocialWebsite  = "website"
	SocialDribbble = "dribbble"
	SocialBehance  = "behance"
)

// Profile is the site owner's identity card.
type Profile struct {
	Name     string   `json:"name" yaml:"name"`
	Role     string   `json:"role" yaml:"role"`
	Location string   `json:"location" yaml:"location"`
	Email    string   `json:"email" yaml:"email"`
	Headline string   `json:"headline" yaml:"headline"`
	Summary  string   `json:"summary" yaml:"summary"`
	Avatar   string   `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Resume   string   `json:"resume,omitempty" yaml:"resume,omitempty"`
	Socials  []Social `json:"socials" yaml:"socials"`
}

// Social links the profile to an external presence.
type Social struct {
	Type  string `json:"type" yaml:"type"`
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel returns the explicit label or a readable default for the social type.
func (s Social) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	switch s.Type {
	case SocialGitHub:
		return "GitHub"
	case SocialLinkedIn:
		return "LinkedIn"
	case SocialX:
		return "X"
	case SocialEmail:
		return "Email"
	case SocialDribbble:
		return "Dribbble"
	case SocialBehance:
		return "Behance"
	default:
		return "Website"
	}
}
