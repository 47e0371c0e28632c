package config

// MatchNsAlias evaluates the alias rules against a context name and returns
// the first matching rule's namespace list verbatim, or nil when no rule
// matches. Rules must have been validated by Load.
func (c *Config) MatchNsAlias(name string) []string {
	for i := range c.NsAlias {
		if c.NsAlias[i].match(name) {
			return c.NsAlias[i].Alias
		}
	}
	return nil
}

func (r *AliasRule) match(name string) bool {
	if r.re != nil && r.re.MatchString(name) {
		return true
	}
	for _, n := range r.Names {
		if n == name {
			return true
		}
	}
	return false
}
