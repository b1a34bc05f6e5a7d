package catalog

// Rules holds the fixed tables that drive ranking and tag matching. Engines
// copy the rules they are given, so callers may reuse or mutate their value
// afterwards without affecting an engine.
type Rules struct {
	// StatusRank maps a normalized status to its priority bucket. Lower sorts first.
	StatusRank map[string]int
	// UnknownRank is used for statuses missing from StatusRank.
	UnknownRank int
	// Aliases maps a canonical tag to synonymous spellings.
	Aliases map[string][]string
	// Tags is the ordered list offered in the filter bar. The first entry selects everything.
	Tags []string
}

// AllTag is the filter value that matches every project.
const AllTag = "All"

// DefaultRules returns a fresh copy of the portfolio's ranking and alias tables.
func DefaultRules() Rules {
	return Rules{
		StatusRank: map[string]int{
			"in-progress":  0,
			"submitted":    1,
			"under-review": 1,
			"planned":      2,
			"preprint":     2,
			"accepted":     3,
			"completed":    3,
		},
		UnknownRank: 4,
		Aliases: map[string][]string{
			"tailwind css": {"tailwind", "tailwindcss"},
			"node.js":      {"node", "nodejs"},
			"pytorch":      {"torch"},
		},
		Tags: []string{
			AllTag,
			"React",
			"TypeScript",
			"Python",
			"FastAPI",
			"PyTorch",
			"Docker",
			"PostgreSQL",
			"AWS",
			"Tailwind CSS",
			"Vite",
			"Framer Motion",
			"Hugging Face",
			"CUDA",
		},
	}
}

func (r Rules) clone() Rules {
	out := Rules{
		StatusRank:  make(map[string]int, len(r.StatusRank)),
		UnknownRank: r.UnknownRank,
		Aliases:     make(map[string][]string, len(r.Aliases)),
		Tags:        append([]string(nil), r.Tags...),
	}
	for status, rank := range r.StatusRank {
		out.StatusRank[normalize(status)] = rank
	}
	for canonical, members := range r.Aliases {
		normalized := make([]string, 0, len(members))
		for _, member := range members {
			normalized = append(normalized, normalize(member))
		}
		out.Aliases[normalize(canonical)] = normalized
	}
	return out
}
